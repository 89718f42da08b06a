// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package recommend

// MergeWithCatalog returns ranked followed by every catalog id not already
// present, in catalog order. Each appended id appears once even if the
// catalog repeats it. The inputs are not modified.
func MergeWithCatalog(ranked, catalog []int64) []int64 {
	seen := make(map[int64]struct{}, len(ranked)+len(catalog))
	merged := make([]int64, 0, len(ranked)+len(catalog))

	for _, id := range ranked {
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	for _, id := range catalog {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	return merged
}
