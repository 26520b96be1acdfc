package dto

import (
	"time"
	"venue/internal/domains/booking/model"
	"venue/shared"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	gModel "venue/shared/model"
	"venue/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	TableID     string `json:"table_id"     validate:"required"`
	BookingDate string `json:"booking_date" validate:"required"`
	StartTime   string `json:"start_time"   validate:"required"`
	EndTime     string `json:"end_time"     validate:"required"`
	PartySize   int    `json:"party_size"   validate:"required,gte=1,lte=50"`
	GuestName   string `json:"guest_name"   validate:"required,max=100"`
	Status      string `json:"status"       validate:"omitempty,oneof=pending confirmed arrived seated completed no_show cancelled_by_guest cancelled_by_venue"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	bookingDate, err := timezone.Parse(constant.DateOnlyFormat, c.BookingDate)
	if err != nil {
		return model.Booking{}, err
	}

	startTime, err := time.Parse(constant.TimeOnlyFormat, c.StartTime)
	if err != nil {
		return model.Booking{}, err
	}

	endTime, err := time.Parse(constant.TimeOnlyFormat, c.EndTime)
	if err != nil {
		return model.Booking{}, err
	}

	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	return model.Booking{
		ID:          uuid.NewString(),
		TableID:     c.TableID,
		BookingDate: bookingDate,
		StartTime:   startTime,
		EndTime:     endTime,
		PartySize:   c.PartySize,
		GuestName:   c.GuestName,
		Status:      status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingRequest struct {
	PartySize int    `db:"party_size" json:"party_size" validate:"omitempty,gte=1,lte=50"`
	GuestName string `db:"guest_name" json:"guest_name" validate:"omitempty,max=100"`
	Status    string `db:"status"     json:"status"     validate:"omitempty,oneof=pending confirmed arrived seated completed no_show cancelled_by_guest cancelled_by_venue"`
}

// RescheduleBookingRequest is a drag-to-reschedule target: a table and a new
// start. The booking keeps its original duration; BookingDate defaults to the
// booking's current date.
type RescheduleBookingRequest struct {
	TableID     string `json:"table_id"     validate:"required"`
	BookingDate string `json:"booking_date" validate:"omitempty"`
	StartTime   string `json:"start_time"   validate:"required"`
}

type BookingResponse struct {
	ID          string `json:"id"`
	TableID     string `json:"table_id"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	PartySize   int    `json:"party_size"`
	GuestName   string `json:"guest_name"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.TableID = model.TableID
	r.BookingDate = model.BookingDate.Format(constant.DateOnlyFormat)
	r.StartTime = model.StartTime.Format(constant.TimeOnlyFormat)
	r.EndTime = model.EndTime.Format(constant.TimeOnlyFormat)
	r.PartySize = model.PartySize
	r.GuestName = model.GuestName
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
