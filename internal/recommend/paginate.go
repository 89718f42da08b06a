// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package recommend

// Paginate returns the 1-indexed page of list. Pages outside
// [1, ceil(len/size)] and non-positive sizes yield an empty, non-nil slice.
// The returned slice is a copy.
func Paginate[T any](list []T, page, size int) []T {
	if size < 1 || page < 1 {
		return []T{}
	}
	if len(list) == 0 || page-1 > (len(list)-1)/size {
		return []T{}
	}

	// start < len(list) here, so neither bound can overflow.
	start := (page - 1) * size
	end := start + min(size, len(list)-start)
	out := make([]T, end-start)
	copy(out, list[start:end])
	return out
}
