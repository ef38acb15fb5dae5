/*
Copyright 2011-2017 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// rmmbench is a thin CLI: it takes one positional parentheses string,
// builds the index, and prints a single CSV line with the construction
// time.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	succinct "github.com/flanglet/succinct-go"
	"github.com/flanglet/succinct-go/bitvector"
)

var workers int

func main() {
	root := &cobra.Command{
		Use:   "rmmbench '(()())'",
		Short: "Build a succinct RMM-tree index over a parentheses string and time it",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	root.Flags().IntVarP(&workers, "workers", "j", runtime.NumCPU(), "number of construction workers")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	input := args[0]

	bv, err := parseInput(input)
	if err != nil {
		log.Error("rmmbench: invalid input", "err", err)
		return err
	}

	start := time.Now()

	ix, err := succinct.Create(bv, succinct.CreateOptions{Workers: workers})
	if err != nil {
		log.Error("rmmbench: construction failed", "err", err)
		return err
	}

	elapsed := time.Since(start)
	defer ix.Destroy()

	fmt.Printf("%d,%s,%d,%f\n", workers, input, bv.Len(), elapsed.Seconds())
	return nil
}

func parseInput(s string) (*bitvector.Bits, error) {
	for i, r := range s {
		if r != '(' && r != ')' {
			return nil, fmt.Errorf("invalid character %q at position %v, want '(' or ')'", r, i)
		}
	}

	return bitvector.NewFromParens(s), nil
}
