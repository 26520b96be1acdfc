package dto

import (
	"time"
	"venue/internal/domains/timeline/model"
	"venue/shared/constant"
)

// BlockResponse carries a timeline block plus its rendering coordinates:
// offset and width in minutes relative to the visible range start.
type BlockResponse struct {
	ID              string `json:"id"`
	TableID         string `json:"table_id"`
	Kind            string `json:"kind"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Label           string `json:"label"`
	Status          string `json:"status"`
	OffsetMinutes   int    `json:"offset_minutes"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (r *BlockResponse) FromModel(block model.TimelineBlock, rangeStart time.Time) {
	r.ID = block.ID
	r.TableID = block.TableID
	r.Kind = block.Kind
	r.StartTime = block.Span.Start.Format(constant.DateFormat)
	r.EndTime = block.Span.End.Format(constant.DateFormat)
	r.Label = block.Label
	r.Status = block.Status
	r.OffsetMinutes = int(model.ToOffset(block.Span.Start, rangeStart).Minutes())
	r.DurationMinutes = int(block.Span.Duration().Minutes())
}

type ConflictResponse struct {
	TableID  string `json:"table_id"`
	BlockIDA string `json:"block_id_a"`
	BlockIDB string `json:"block_id_b"`
	Reason   string `json:"reason"`
}

func (r *ConflictResponse) FromModel(conflict model.Conflict) {
	r.TableID = conflict.TableID
	r.BlockIDA = conflict.BlockIDA
	r.BlockIDB = conflict.BlockIDB
	r.Reason = conflict.Reason
}

type TableTimelineResponse struct {
	TableID string          `json:"table_id"`
	Label   string          `json:"label"`
	ZoneID  string          `json:"zone_id,omitempty"`
	Blocks  []BlockResponse `json:"blocks"`
}

type TimelineResponse struct {
	VenueID   string                  `json:"venue_id"`
	Date      string                  `json:"date"`
	FromHour  int                     `json:"from_hour"`
	ToHour    int                     `json:"to_hour"`
	Tables    []TableTimelineResponse `json:"tables"`
	Conflicts []ConflictResponse      `json:"conflicts"`
}
