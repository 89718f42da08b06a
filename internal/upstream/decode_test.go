// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package upstream

import (
	"testing"
	"time"
)

func TestParseStartTime(t *testing.T) {
	t.Parallel()

	utc := time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC)

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2026-03-01T09:30:15", utc, false},
		{"2026-03-01T09:30:15.123456", utc, false},
		{"2026-03-01T09:30:15Z", utc, false},
		{"2026-03-01T18:30:15+09:00", utc, false},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, true},
		{"2026-03-01", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := parseStartTime(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseStartTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseStartTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeActions_CountsUnknownCategories(t *testing.T) {
	t.Parallel()

	body := []byte(`{"data":[
		{"userEmail":"a","challengeId":1,"category":"TOYS"},
		{"userEmail":"b","challengeId":2,"category":"SPACE"},
		{"userEmail":"c","challengeId":3,"category":""}
	]}`)

	actions, unknown, err := decodeActions(body)
	if err != nil {
		t.Fatalf("decodeActions() error = %v", err)
	}
	if unknown != 2 {
		t.Errorf("unknown = %d, want 2", unknown)
	}
	if len(actions) != 3 {
		t.Errorf("len(actions) = %d, want 3", len(actions))
	}
}

func TestDecodeActions_RejectsMissingUser(t *testing.T) {
	t.Parallel()

	if _, _, err := decodeActions([]byte(`{"data":[{"userEmail":" ","challengeId":1,"category":"TOYS"}]}`)); err == nil {
		t.Error("expected error for blank userEmail")
	}
}

func TestDecodeCatalog_Empty(t *testing.T) {
	t.Parallel()

	ids, err := decodeCatalog([]byte(`{"data":[]}`))
	if err != nil {
		t.Fatalf("decodeCatalog() error = %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("decodeCatalog() = %v, want empty non-nil", ids)
	}
}
