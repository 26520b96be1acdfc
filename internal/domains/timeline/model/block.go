package model

import (
	"sort"
)

const (
	BlockKindSession = "session"
	BlockKindBooking = "booking"
)

// kindRank fixes the ordering of blocks that start at the same instant:
// live sessions render before bookings.
var kindRank = map[string]int{
	BlockKindSession: 0,
	BlockKindBooking: 1,
}

// TimelineBlock is a single occupied stretch on a table's lane. Blocking
// marks whether the block participates in conflict detection; terminal
// bookings are drawn but never conflict.
type TimelineBlock struct {
	ID       string   `json:"id"`
	TableID  string   `json:"table_id"`
	Kind     string   `json:"kind"`
	Span     Interval `json:"span"`
	Label    string   `json:"label"`
	Status   string   `json:"status"`
	Blocking bool     `json:"blocking"`
}

type Conflict struct {
	TableID  string `json:"table_id"`
	BlockIDA string `json:"block_id_a"`
	BlockIDB string `json:"block_id_b"`
	Reason   string `json:"reason"`
}

// SortBlocks orders blocks by start time, then kind, then id, so the
// timeline output is deterministic for identical inputs.
func SortBlocks(blocks []TimelineBlock) {
	sort.Slice(blocks, func(i, j int) bool {
		a, b := blocks[i], blocks[j]
		if !a.Span.Start.Equal(b.Span.Start) {
			return a.Span.Start.Before(b.Span.Start)
		}
		if kindRank[a.Kind] != kindRank[b.Kind] {
			return kindRank[a.Kind] < kindRank[b.Kind]
		}
		return a.ID < b.ID
	})
}

// DetectConflicts scans every pair of blocking blocks on a single table's
// lane and reports the overlapping pairs. The caller is expected to pass
// blocks belonging to one table; cross-table overlap is never a conflict.
func DetectConflicts(blocks []TimelineBlock) []Conflict {
	conflicts := make([]Conflict, 0)
	for i := 0; i < len(blocks); i++ {
		if !blocks[i].Blocking {
			continue
		}
		for j := i + 1; j < len(blocks); j++ {
			if !blocks[j].Blocking {
				continue
			}
			if Overlaps(blocks[i].Span, blocks[j].Span) {
				conflicts = append(conflicts, Conflict{
					TableID:  blocks[i].TableID,
					BlockIDA: blocks[i].ID,
					BlockIDB: blocks[j].ID,
					Reason:   "time overlap",
				})
			}
		}
	}
	return conflicts
}
