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

// Package bptest holds balanced-parentheses generators and naive
// reference implementations shared by the test suites of rmmtree,
// fwdsearch and the root succinct package.
package bptest

import "math/rand"

// Random builds a well-formed BP string of length n (n must be even)
// using the given seed: a random ballot sequence that never lets the
// running excess go negative.
func Random(n int, seed int64) string {
	if n%2 != 0 {
		panic("bptest: n must be even")
	}

	r := rand.New(rand.NewSource(seed))
	opens, closes := n/2, n/2
	excess := 0
	buf := make([]byte, n)

	for i := 0; i < n; i++ {
		canOpen := opens > 0
		canClose := closes > 0 && excess > 0

		var open bool

		switch {
		case canOpen && canClose:
			open = r.Intn(2) == 0
		case canOpen:
			open = true
		default:
			open = false
		}

		if open {
			buf[i] = '('
			opens--
			excess++
		} else {
			buf[i] = ')'
			closes--
			excess--
		}
	}

	return string(buf)
}

// LeftLeaningPath builds `opens` '(' followed by `opens` ')': a single
// path of nested nodes.
func LeftLeaningPath(opens int) string {
	buf := make([]byte, 2*opens)

	for i := 0; i < opens; i++ {
		buf[i] = '('
	}

	for i := opens; i < 2*opens; i++ {
		buf[i] = ')'
	}

	return string(buf)
}

// NaiveFindClose returns, for every opening-parenthesis index in s, the
// index of its matching close, computed by a plain stack matcher. Indices
// for closing parentheses map to -1.
func NaiveFindClose(s string) []int {
	match := make([]int, len(s))
	for i := range match {
		match[i] = -1
	}

	var stack []int

	for i, r := range s {
		if r == '(' {
			stack = append(stack, i)
		} else {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			match[top] = i
		}
	}

	return match
}
