// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package specimiq

import (
	"fmt"
	"testing"
)

func Example_wavelengths() {
	w := Wavelengths()
	fmt.Println(len(w), w[0], w[PreviewBand], w[len(w)-1])

	// Output:
	// 204 397.32 542.68 1003.58
}

func Test_WavelengthsAscending(t *testing.T) {
	w := Wavelengths()
	for c := 1; c < len(w); c++ {
		if w[c] <= w[c-1] {
			t.Errorf("wavelength %v (%v) not above previous (%v)", c, w[c], w[c-1])
		}
	}
}
