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

package succinct

import "fmt"

// Error codes for ConstructionError.
const (
	ErrCodeInputTooSmall = iota + 1
	ErrCodeMalformedBP
	ErrCodeInvariantViolation
)

// ConstructionError is returned by Create when the index cannot be built.
type ConstructionError struct {
	Msg  string
	Code int
}

// Error returns the message followed by the error code, as "msg (code N)".
func (this *ConstructionError) Error() string {
	return fmt.Sprintf("%v (code %v)", this.Msg, this.Code)
}
