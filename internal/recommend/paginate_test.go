// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package recommend

import (
	"math"
	"reflect"
	"testing"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	list := []int64{5, 3, 2, 1, 4, 6}
	tests := []struct {
		name       string
		page, size int
		want       []int64
	}{
		{"first", 1, 2, []int64{5, 3}},
		{"second", 2, 2, []int64{2, 1}},
		{"last full", 3, 2, []int64{4, 6}},
		{"past end", 4, 2, []int64{}},
		{"truncated last", 2, 4, []int64{4, 6}},
		{"page zero", 0, 2, []int64{}},
		{"negative page", -1, 2, []int64{}},
		{"zero size", 1, 0, []int64{}},
		{"size larger than list", 1, 100, []int64{5, 3, 2, 1, 4, 6}},
		{"max size", 1, math.MaxInt, []int64{5, 3, 2, 1, 4, 6}},
		{"max page", math.MaxInt, 2, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Paginate(list, tt.page, tt.size); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Paginate(page=%d,size=%d) = %v, want %v", tt.page, tt.size, got, tt.want)
			}
		})
	}
}

func TestPaginate_Reconstructs(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 13; n++ {
		list := make([]int64, n)
		for i := range list {
			list[i] = int64(i * 7)
		}
		for size := 1; size <= 5; size++ {
			maxPage := (n + size - 1) / size
			rebuilt := make([]int64, 0, n)
			for p := 1; p <= maxPage; p++ {
				rebuilt = append(rebuilt, Paginate(list, p, size)...)
			}
			if !reflect.DeepEqual(rebuilt, list) {
				t.Errorf("n=%d size=%d: rebuilt %v, want %v", n, size, rebuilt, list)
			}
			if got := Paginate(list, maxPage+1, size); len(got) != 0 {
				t.Errorf("n=%d size=%d: page past end = %v", n, size, got)
			}
		}
	}
}

func TestPaginate_ReturnsCopy(t *testing.T) {
	t.Parallel()

	list := []int64{1, 2, 3}
	page := Paginate(list, 1, 2)
	page[0] = 99
	if list[0] != 1 {
		t.Error("Paginate result aliases the input")
	}
}
