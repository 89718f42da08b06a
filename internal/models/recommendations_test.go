// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func intPtr(v int) *int { return &v }

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       RecommendationsRequest
		wantPage int
		wantSize int
	}{
		{"both unset", RecommendationsRequest{}, 1, 10},
		{"page set", RecommendationsRequest{Page: intPtr(3)}, 3, 10},
		{"size set", RecommendationsRequest{Size: intPtr(25)}, 1, 25},
		{"explicit zero kept for validation", RecommendationsRequest{Page: intPtr(0), Size: intPtr(0)}, 0, 0},
		{"negative kept for validation", RecommendationsRequest{Page: intPtr(-1), Size: intPtr(-2)}, -1, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := tt.in
			req.ApplyDefaults(DefaultPageSize)
			if req.PageNum() != tt.wantPage || req.PageSize() != tt.wantSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", req.PageNum(), req.PageSize(), tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestRecommendationsRequest_DecodeDistinguishesZero(t *testing.T) {
	t.Parallel()

	var omitted, zero RecommendationsRequest
	if err := json.Unmarshal([]byte(`{"user_email":"a@example.com"}`), &omitted); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if err := json.Unmarshal([]byte(`{"user_email":"a@example.com","page":0,"size":0}`), &zero); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if omitted.Page != nil || omitted.Size != nil {
		t.Errorf("omitted fields decoded as %v/%v, want nil", omitted.Page, omitted.Size)
	}
	if zero.Page == nil || zero.Size == nil {
		t.Fatal("explicit zeros decoded as nil")
	}
	zero.ApplyDefaults(DefaultPageSize)
	if zero.PageNum() != 0 || zero.PageSize() != 0 {
		t.Errorf("explicit zeros replaced by defaults: page=%d size=%d", zero.PageNum(), zero.PageSize())
	}
}

func TestRecommendationsResponse_WireShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(RecommendationsResponse{RoomIDs: []int64{2, 1}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"roomIds":[2,1]}` {
		t.Errorf("Marshal() = %s", data)
	}

	empty, _ := json.Marshal(RecommendationsResponse{RoomIDs: []int64{}})
	if !strings.Contains(string(empty), `"roomIds":[]`) {
		t.Errorf("empty list must encode as [], got %s", empty)
	}
}
