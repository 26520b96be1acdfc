package model

import "venue/shared/model"

const (
	TableName  = "venue_tables"
	EntityName = "table"

	FieldID       = "id"
	FieldVenueID  = "venue_id"
	FieldZoneID   = "zone_id"
	FieldLabel    = "label"
	FieldCapacity = "capacity"
	FieldShape    = "shape"
	FieldRotation = "rotation_degrees"
	FieldActive   = "active"
)

const (
	ShapeRectangle = "rectangle"
	ShapeRound     = "round"
	ShapeSquare    = "square"
)

// Table is a physical venue table. Tables are deactivated, never deleted, so
// historical bookings and sessions stay reportable.
type Table struct {
	ID       string  `db:"id"`
	VenueID  string  `db:"venue_id"`
	ZoneID   *string `db:"zone_id"`
	Label    string  `db:"label"`
	Capacity int     `db:"capacity"`
	Shape    string  `db:"shape"`
	Rotation int     `db:"rotation_degrees"`
	Active   bool    `db:"active"`
	model.Metadata
}
