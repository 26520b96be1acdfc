package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"venue/config"
	"venue/infras/otel/mocks"
	bookingMocks "venue/internal/domains/booking/mocks"
	bookingModel "venue/internal/domains/booking/model"
	sessionMocks "venue/internal/domains/session/mocks"
	sessionModel "venue/internal/domains/session/model"
	tableMocks "venue/internal/domains/table/mocks"
	tableModel "venue/internal/domains/table/model"
	"venue/internal/domains/timeline/model"
	"venue/internal/domains/timeline/service"
	cacheMocks "venue/shared/cache/mocks"
	"venue/shared/timezone"
)

type timelineServiceMocks struct {
	tables   *tableMocks.MockTable
	bookings *bookingMocks.MockBooking
	sessions *sessionMocks.MockSession
	cache    *cacheMocks.MockRedisCache
}

func newTimelineService(t *testing.T) (service.Timeline, timelineServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := timelineServiceMocks{
		tables:   tableMocks.NewMockTable(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		sessions: sessionMocks.NewMockSession(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Venue.Timeline.OpenHour = 9
	cfg.Venue.Timeline.CloseHour = 24

	svc := service.New(m.tables, m.bookings, m.sessions, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func timelineDate() time.Time {
	date, err := timezone.Parse("2006-01-02", "2025-03-10")
	if err != nil {
		panic(err)
	}

	return date
}

func laneTable(id, label string) tableModel.Table {
	return tableModel.Table{
		ID:      id,
		VenueID: "venue-1",
		Label:   label,
		Active:  true,
	}
}

func bookingOn(id, tableID, startClock, endClock, status string) bookingModel.Booking {
	mustClock := func(value string) time.Time {
		parsed, err := time.Parse("15:04", value)
		if err != nil {
			panic(err)
		}

		return parsed
	}

	return bookingModel.Booking{
		ID:          id,
		TableID:     tableID,
		BookingDate: timelineDate(),
		StartTime:   mustClock(startClock),
		EndTime:     mustClock(endClock),
		PartySize:   2,
		GuestName:   "Guest " + id,
		Status:      status,
	}
}

func TestTimelineService_Build(t *testing.T) {
	date := timelineDate()

	t.Run("every active table gets a lane, conflicts are per table", func(t *testing.T) {
		svc, m := newTimelineService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.tables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{laneTable("table-1", "T1"), laneTable("table-2", "T2")}, nil)

		m.bookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{
				bookingOn("booking-1", "table-1", "18:00", "19:30", bookingModel.StatusConfirmed),
				bookingOn("booking-2", "table-1", "19:00", "20:00", bookingModel.StatusConfirmed),
				bookingOn("booking-3", "table-2", "19:00", "20:00", bookingModel.StatusConfirmed),
			}, nil)

		m.sessions.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]sessionModel.Session{}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Build(context.Background(), "venue-1", date, -1, -1)

		assert.NoError(t, err)
		assert.Equal(t, "venue-1", res.VenueID)
		assert.Equal(t, 9, res.FromHour)
		assert.Equal(t, 24, res.ToHour)
		assert.Len(t, res.Tables, 2)
		assert.Len(t, res.Tables[0].Blocks, 2)
		assert.Len(t, res.Tables[1].Blocks, 1)

		// booking-1 and booking-2 overlap on table-1; booking-3 sits on its
		// own lane and must not be dragged into the conflict.
		assert.Len(t, res.Conflicts, 1)
		assert.Equal(t, "table-1", res.Conflicts[0].TableID)
		assert.Equal(t, "booking-1", res.Conflicts[0].BlockIDA)
		assert.Equal(t, "booking-2", res.Conflicts[0].BlockIDB)
	})

	t.Run("terminal bookings are drawn but never conflict", func(t *testing.T) {
		svc, m := newTimelineService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.tables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{laneTable("table-1", "T1")}, nil)

		m.bookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{
				bookingOn("booking-done", "table-1", "18:00", "19:30", bookingModel.StatusCompleted),
				bookingOn("booking-next", "table-1", "18:30", "20:00", bookingModel.StatusConfirmed),
			}, nil)

		m.sessions.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]sessionModel.Session{}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Build(context.Background(), "venue-1", date, -1, -1)

		assert.NoError(t, err)
		assert.Len(t, res.Tables[0].Blocks, 2)
		assert.Empty(t, res.Conflicts)
	})

	t.Run("hour zero is a real midnight bound, not an unset one", func(t *testing.T) {
		svc, m := newTimelineService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.tables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{laneTable("table-1", "T1")}, nil)

		m.bookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{}, nil)

		m.sessions.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]sessionModel.Session{}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Build(context.Background(), "venue-1", date, 0, 24)

		assert.NoError(t, err)
		assert.Equal(t, 0, res.FromHour)
		assert.Equal(t, 24, res.ToHour)
	})

	t.Run("a session starting exactly at close draws no block", func(t *testing.T) {
		svc, m := newTimelineService(t)

		loc := timezone.GetLocation()
		closeInstant := time.Date(2025, time.March, 11, 0, 0, 0, 0, loc)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.tables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{laneTable("table-1", "T1")}, nil)

		m.bookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{}, nil)

		m.sessions.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]sessionModel.Session{
				{ID: "session-edge", TableID: "table-1", StartedAt: closeInstant},
			}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Build(context.Background(), "venue-1", date, 9, 24)

		assert.NoError(t, err)
		assert.Empty(t, res.Tables[0].Blocks)
		assert.Empty(t, res.Conflicts)
	})

	t.Run("open session projects to range end and conflicts with later bookings", func(t *testing.T) {
		svc, m := newTimelineService(t)

		loc := timezone.GetLocation()
		startedAt := time.Date(2025, time.March, 10, 17, 0, 0, 0, loc)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.tables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{laneTable("table-1", "T1")}, nil)

		m.bookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{
				bookingOn("booking-later", "table-1", "20:00", "21:00", bookingModel.StatusConfirmed),
			}, nil)

		m.sessions.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]sessionModel.Session{
				{ID: "session-1", TableID: "table-1", StartedAt: startedAt},
			}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Build(context.Background(), "venue-1", date, 9, 24)

		assert.NoError(t, err)
		assert.Len(t, res.Tables[0].Blocks, 2)
		assert.Len(t, res.Conflicts, 1)
		assert.Equal(t, "session-1", res.Conflicts[0].BlockIDA)
		assert.Equal(t, "booking-later", res.Conflicts[0].BlockIDB)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		svc, m := newTimelineService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.Build(context.Background(), "venue-1", date, 9, 24)

		assert.NoError(t, err)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		svc, _ := newTimelineService(t)

		_, err := svc.Build(context.Background(), "venue-1", date, 20, 18)

		assert.Error(t, err)
	})
}

func TestTimelineService_TableBlocks(t *testing.T) {
	svc, m := newTimelineService(t)

	m.bookings.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]bookingModel.Booking{
			bookingOn("booking-1", "table-1", "18:00", "19:30", bookingModel.StatusConfirmed),
		}, nil)

	m.sessions.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]sessionModel.Session{}, nil)

	blocks, err := svc.TableBlocks(context.Background(), "table-1", timelineDate(), "booking-moving")

	assert.NoError(t, err)
	assert.Len(t, blocks, 1)
	assert.Equal(t, "booking-1", blocks[0].ID)
	assert.Equal(t, model.BlockKindBooking, blocks[0].Kind)
	assert.True(t, blocks[0].Blocking)
}
