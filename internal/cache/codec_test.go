// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package cache

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestEncodeDecodeList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ids  []int64
	}{
		{"empty", []int64{}},
		{"single", []int64{42}},
		{"ordered", []int64{5, 3, 2, 1, 4, 6}},
		{"extremes", []int64{math.MinInt64, -1, 0, math.MaxInt64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeList(EncodeList(tt.ids))
			if err != nil {
				t.Fatalf("DecodeList() error = %v", err)
			}
			if !slices.Equal(got, tt.ids) {
				t.Errorf("DecodeList() = %v, want %v", got, tt.ids)
			}
			if got == nil {
				t.Error("DecodeList() returned nil slice")
			}
		})
	}
}

func TestDecodeList_Rejects(t *testing.T) {
	t.Parallel()

	valid := EncodeList([]int64{1, 2, 3})
	unknownVersion := append([]byte(nil), valid...)
	unknownVersion[2] = 9

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"nil", nil, ErrCorrupt},
		{"short header", []byte{'C', 'R'}, ErrCorrupt},
		{"bad magic", []byte{'X', 'R', 1, 0}, ErrCorrupt},
		{"unknown version", unknownVersion, ErrUnsupportedVersion},
		{"missing count", []byte{'C', 'R', 1}, ErrCorrupt},
		{"truncated body", valid[:len(valid)-1], ErrCorrupt},
		{"trailing bytes", append(append([]byte(nil), valid...), 0x00), ErrCorrupt},
		{"huge count", []byte{'C', 'R', 1, 0xff, 0xff, 0xff, 0xff, 0x0f}, ErrCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeList(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DecodeList() error = %v, want %v", err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("DecodeList() returned partial list %v", got)
			}
		})
	}
}
