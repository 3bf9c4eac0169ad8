// Copyright 2025 The cctt Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package collections provides small generic utilities for slices and a
// Set type for membership testing.
package collections

// MapSlice applies fn to each element of s and returns the resulting
// slice.
//
// Example:
//
//	MapSlice([]int{1, 2, 3}, func(x int) string { return fmt.Sprint(x) })
//	=> []string{"1", "2", "3"}
func MapSlice[TSlice ~[]T, T, V any](s TSlice, fn func(T) V) []V {
	out := make([]V, 0, len(s))
	for _, t := range s {
		out = append(out, fn(t))
	}
	return out
}

// FilterSlice returns a new slice containing only the elements of s for
// which predicate returns true.
func FilterSlice[TSlice ~[]T, T any](s TSlice, predicate func(T) bool) TSlice {
	out := make(TSlice, 0, len(s))
	for _, t := range s {
		if predicate(t) {
			out = append(out, t)
		}
	}
	return out
}
