package model

import "venue/shared/model"

const (
	TableName  = "venue_zones"
	EntityName = "zone"

	FieldID      = "id"
	FieldVenueID = "venue_id"
	FieldName    = "name"
	FieldActive  = "active"
)

// Zone groups tables within a venue. Deactivating a zone cascades to its
// tables.
type Zone struct {
	ID      string `db:"id"`
	VenueID string `db:"venue_id"`
	Name    string `db:"name"`
	Active  bool   `db:"active"`
	model.Metadata
}
