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

package utils

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Simple Go helper functions
// stuff that you'd expect to be part of the std lib but aren't

// ItemInSlice - true if a is in list
func ItemInSlice[T comparable](a T, list []T) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// ConvertSlice - element-wise numeric conversion, eg float32 cube data to float64 for gonum
func ConvertSlice[T constraints.Integer | constraints.Float, F constraints.Integer | constraints.Float](from []F) []T {
	res := make([]T, len(from))
	for i, e := range from {
		res[i] = T(e)
	}
	return res
}

// Product - multiplies dimensions together, 1 for an empty list
func Product[T constraints.Integer](dims []T) T {
	var result T = 1
	for _, d := range dims {
		result *= d
	}
	return result
}

// ProductFits - multiplies non-negative values together, false if any is negative or the result
// would overflow an int
func ProductFits(values ...int) (int, bool) {
	result := 1
	for _, v := range values {
		if v < 0 {
			return 0, false
		}
		if v != 0 && result > math.MaxInt/v {
			return 0, false
		}
		result *= v
	}
	return result, true
}
