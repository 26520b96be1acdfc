package dto

import (
	"venue/internal/domains/table/model"
	"venue/shared"
	gDto "venue/shared/dto"
	gModel "venue/shared/model"
	"venue/shared/timezone"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	VenueID  string `json:"venue_id" validate:"required"`
	ZoneID   string `json:"zone_id"  validate:"omitempty"`
	Label    string `json:"label"    validate:"required,max=50"`
	Capacity int    `json:"capacity" validate:"required,gte=1,lte=50"`
	Shape    string `json:"shape"    validate:"omitempty,oneof=rectangle round square"`
	Rotation int    `json:"rotation" validate:"omitempty,gte=0,lt=360"`
}

func (c *CreateTableRequest) ToModel(user string) model.Table {
	shape := c.Shape
	if shape == "" {
		shape = model.ShapeRectangle
	}

	var zoneID *string
	if c.ZoneID != "" {
		zoneID = &c.ZoneID
	}

	return model.Table{
		ID:       uuid.NewString(),
		VenueID:  c.VenueID,
		ZoneID:   zoneID,
		Label:    c.Label,
		Capacity: c.Capacity,
		Shape:    shape,
		Rotation: c.Rotation,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTableRequest struct {
	ZoneID   string `db:"zone_id"          json:"zone_id"  validate:"omitempty"`
	Label    string `db:"label"            json:"label"    validate:"omitempty,max=50"`
	Capacity int    `db:"capacity"         json:"capacity" validate:"omitempty,gte=1,lte=50"`
	Shape    string `db:"shape"            json:"shape"    validate:"omitempty,oneof=rectangle round square"`
	Rotation int    `db:"rotation_degrees" json:"rotation" validate:"omitempty,gte=0,lt=360"`
}

// DeactivateTableRequest carries the confirmation flag of the two-phase
// deactivation workflow.
type DeactivateTableRequest struct {
	Force bool `json:"force"`
}

// DeactivateTableResponse is a structured outcome, not an error: the
// needs-confirmation branch is an expected part of the workflow.
type DeactivateTableResponse struct {
	Deactivated        bool `json:"deactivated"`
	NeedsConfirmation  bool `json:"needs_confirmation"`
	OutstandingFutures int  `json:"outstanding_future_bookings"`
}

type TableResponse struct {
	ID       string `json:"id"`
	VenueID  string `json:"venue_id"`
	ZoneID   string `json:"zone_id,omitempty"`
	Label    string `json:"label"`
	Capacity int    `json:"capacity"`
	Shape    string `json:"shape"`
	Rotation int    `json:"rotation"`
	Active   bool   `json:"active"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.VenueID = model.VenueID

	if model.ZoneID != nil {
		r.ZoneID = *model.ZoneID
	}

	r.Label = model.Label
	r.Capacity = model.Capacity
	r.Shape = model.Shape
	r.Rotation = model.Rotation
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
