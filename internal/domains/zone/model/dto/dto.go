package dto

import (
	"venue/internal/domains/zone/model"
	"venue/shared"
	gDto "venue/shared/dto"
	gModel "venue/shared/model"
	"venue/shared/timezone"

	"github.com/google/uuid"
)

type CreateZoneRequest struct {
	VenueID string `json:"venue_id" validate:"required"`
	Name    string `json:"name"     validate:"required,max=100"`
}

func (c *CreateZoneRequest) ToModel(user string) model.Zone {
	return model.Zone{
		ID:      uuid.NewString(),
		VenueID: c.VenueID,
		Name:    c.Name,
		Active:  true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateZoneRequest struct {
	Name string `db:"name" json:"name" validate:"omitempty,max=100"`
}

type DeactivateZoneRequest struct {
	Force bool `json:"force"`
}

// DeactivateZoneResponse reports the outcome of the guarded cascade. When the
// zone write commits but table cascades fail, the failures are listed here
// rather than rolled back; the zone stays inactive.
type DeactivateZoneResponse struct {
	Deactivated        bool     `json:"deactivated"`
	NeedsConfirmation  bool     `json:"needs_confirmation"`
	OutstandingFutures int      `json:"outstanding_future_bookings"`
	DeactivatedTables  int      `json:"deactivated_tables"`
	FailedTables       []string `json:"failed_tables,omitempty"`
}

type ZoneResponse struct {
	ID      string `json:"id"`
	VenueID string `json:"venue_id"`
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	gDto.Metadata
}

func (r *ZoneResponse) FromModel(model model.Zone) {
	r.ID = model.ID
	r.VenueID = model.VenueID
	r.Name = model.Name
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetZonesResponse struct {
	Zones     []ZoneResponse `json:"zones"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetZonesResponse) FromModels(models []model.Zone, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Zones = make([]ZoneResponse, len(models))
	for i, mod := range models {
		r.Zones[i].FromModel(mod)
	}
}
