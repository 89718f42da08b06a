// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package upstream

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/challengerec/internal/recommend"
)

type actionRecord struct {
	UserEmail   string `json:"userEmail"`
	ChallengeID int64  `json:"challengeId"`
	Category    string `json:"category"`
	StartTime   string `json:"startTime"`
}

type actionsResponse struct {
	Data []actionRecord `json:"data"`
}

type catalogRecord struct {
	RoomID int64 `json:"roomId"`
}

type catalogResponse struct {
	Data []catalogRecord `json:"data"`
}

// zonelessLayout is how the service writes LocalDateTime values.
const zonelessLayout = "2006-01-02T15:04:05"

// decodeActions converts the action log body. It also reports how many
// records had a category outside the known set; those are mapped to ETC.
func decodeActions(body []byte) ([]recommend.UserAction, int, error) {
	var resp actionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, err
	}

	unknown := 0
	actions := make([]recommend.UserAction, 0, len(resp.Data))
	for i, r := range resp.Data {
		if strings.TrimSpace(r.UserEmail) == "" {
			return nil, 0, fmt.Errorf("record %d: empty userEmail", i)
		}
		category, ok := recommend.ParseCategory(r.Category)
		if !ok {
			category = recommend.CategoryEtc
			unknown++
		}
		startedAt, err := parseStartTime(r.StartTime)
		if err != nil {
			return nil, 0, fmt.Errorf("record %d: %w", i, err)
		}
		actions = append(actions, recommend.UserAction{
			UserID:      r.UserEmail,
			ChallengeID: r.ChallengeID,
			Category:    category,
			StartedAt:   startedAt,
		})
	}
	return actions, unknown, nil
}

func decodeCatalog(body []byte) ([]int64, error) {
	var resp catalogResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	ids := make([]int64, len(resp.Data))
	for i, r := range resp.Data {
		ids[i] = r.RoomID
	}
	return ids, nil
}

// parseStartTime accepts RFC3339 or a zone-less timestamp read as UTC. An
// empty value yields the zero time.
func parseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(zonelessLayout, trimFraction(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid startTime %q", s)
	}
	return t, nil
}

// trimFraction drops a fractional-second suffix such as ".123456".
func trimFraction(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}
