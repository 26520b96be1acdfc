package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"venue/config"
	"venue/infras/otel/mocks"
	bookingMocks "venue/internal/domains/booking/mocks"
	tableMocks "venue/internal/domains/table/mocks"
	"venue/internal/domains/table/model"
	"venue/internal/domains/table/model/dto"
	"venue/internal/domains/table/service"
	timelineMocks "venue/internal/domains/timeline/mocks"
	zoneMocks "venue/internal/domains/zone/mocks"
	zoneModel "venue/internal/domains/zone/model"
	eventMocks "venue/internal/events/mocks"
	cacheMocks "venue/shared/cache/mocks"
	"venue/shared/failure"
)

type tableServiceMocks struct {
	repo     *tableMocks.MockTable
	zones    *zoneMocks.MockZone
	bookings *bookingMocks.MockBooking
	timeline *timelineMocks.MockTimeline
	cache    *cacheMocks.MockRedisCache
}

func newTableService(t *testing.T) (service.Table, tableServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := tableServiceMocks{
		repo:     tableMocks.NewMockTable(ctrl),
		zones:    zoneMocks.NewMockZone(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		timeline: timelineMocks.NewMockTimeline(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.zones, m.bookings, m.timeline, eventMocks.NewPublisher(), cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func storedTable(id string, active bool) model.Table {
	return model.Table{
		ID:      id,
		VenueID: "venue-1",
		Label:   "T1",
		Shape:   model.ShapeRectangle,
		Active:  active,
	}
}

func expectCacheInvalidation(m tableServiceMocks) {
	m.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	m.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func TestTableService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateTableRequest
		setupMock func(m tableServiceMocks)
		wantErr   bool
	}{
		{
			name: "creates a free-standing table",
			req: dto.CreateTableRequest{
				VenueID:  "venue-1",
				Label:    "T1",
				Capacity: 4,
				Shape:    model.ShapeRectangle,
			},
			setupMock: func(m tableServiceMocks) {
				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				m.timeline.EXPECT().Invalidate(gomock.Any())
				expectCacheInvalidation(m)
			},
		},
		{
			name: "creates a table inside a zone of the same venue",
			req: dto.CreateTableRequest{
				VenueID:  "venue-1",
				ZoneID:   "zone-1",
				Label:    "T2",
				Capacity: 2,
				Shape:    model.ShapeRound,
			},
			setupMock: func(m tableServiceMocks) {
				m.zones.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(zoneModel.Zone{ID: "zone-1", VenueID: "venue-1", Active: true}, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				m.timeline.EXPECT().Invalidate(gomock.Any())
				expectCacheInvalidation(m)
			},
		},
		{
			name: "rejects a zone from another venue",
			req: dto.CreateTableRequest{
				VenueID:  "venue-1",
				ZoneID:   "zone-1",
				Label:    "T3",
				Capacity: 2,
				Shape:    model.ShapeSquare,
			},
			setupMock: func(m tableServiceMocks) {
				m.zones.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(zoneModel.Zone{ID: "zone-1", VenueID: "venue-2", Active: true}, nil)
			},
			wantErr: true,
		},
		{
			name: "rejects an unknown zone",
			req: dto.CreateTableRequest{
				VenueID:  "venue-1",
				ZoneID:   "zone-1",
				Label:    "T4",
				Capacity: 2,
				Shape:    model.ShapeSquare,
			},
			setupMock: func(m tableServiceMocks) {
				m.zones.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(zoneModel.Zone{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTableService(t)
			tt.setupMock(m)

			err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTableService_Deactivate(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		setupMock func(m tableServiceMocks)
		wantErr   bool
		want      dto.DeactivateTableResponse
	}{
		{
			name:  "no outstanding bookings deactivates immediately",
			force: false,
			setupMock: func(m tableServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedTable("table-1", true), nil)

				m.bookings.EXPECT().
					CountFutureNonTerminal(gomock.Any(), []string{"table-1"}).
					Return(0, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.timeline.EXPECT().Invalidate(gomock.Any())
				expectCacheInvalidation(m)
			},
			want: dto.DeactivateTableResponse{Deactivated: true},
		},
		{
			name:  "outstanding bookings ask for confirmation without committing",
			force: false,
			setupMock: func(m tableServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedTable("table-1", true), nil)

				m.bookings.EXPECT().
					CountFutureNonTerminal(gomock.Any(), []string{"table-1"}).
					Return(3, nil)
			},
			want: dto.DeactivateTableResponse{NeedsConfirmation: true, OutstandingFutures: 3},
		},
		{
			name:  "force commits despite outstanding bookings",
			force: true,
			setupMock: func(m tableServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedTable("table-1", true), nil)

				m.bookings.EXPECT().
					CountFutureNonTerminal(gomock.Any(), []string{"table-1"}).
					Return(3, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.timeline.EXPECT().Invalidate(gomock.Any())
				expectCacheInvalidation(m)
			},
			want: dto.DeactivateTableResponse{Deactivated: true, OutstandingFutures: 3},
		},
		{
			name:  "already inactive is idempotent",
			force: false,
			setupMock: func(m tableServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedTable("table-1", false), nil)
			},
			want: dto.DeactivateTableResponse{Deactivated: true},
		},
		{
			name:  "unknown table",
			force: false,
			setupMock: func(m tableServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Table{}, nil)
			},
			wantErr: true,
		},
		{
			name:  "count error aborts",
			force: false,
			setupMock: func(m tableServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedTable("table-1", true), nil)

				m.bookings.EXPECT().
					CountFutureNonTerminal(gomock.Any(), []string{"table-1"}).
					Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTableService(t)
			tt.setupMock(m)

			res, err := svc.Deactivate(context.Background(), "table-1", tt.force)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestTableService_Activate(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m tableServiceMocks)
		wantErr   bool
	}{
		{
			name: "activates an inactive table",
			setupMock: func(m tableServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.timeline.EXPECT().Invalidate(gomock.Any())
				expectCacheInvalidation(m)
			},
		},
		{
			name: "unknown table",
			setupMock: func(m tableServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTableService(t)
			tt.setupMock(m)

			err := svc.Activate(context.Background(), "table-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 404, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
