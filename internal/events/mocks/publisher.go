package mocks

import (
	"context"
	"venue/internal/events"
)

type publisherImpl struct {
}

// SessionEvent implements events.Publisher.
func (p *publisherImpl) SessionEvent(_ context.Context, _, _, _ string) {

}

// BookingEvent implements events.Publisher.
func (p *publisherImpl) BookingEvent(_ context.Context, _, _, _ string) {

}

// TableEvent implements events.Publisher.
func (p *publisherImpl) TableEvent(_ context.Context, _, _ string) {

}

func NewPublisher() events.Publisher {
	return &publisherImpl{}
}
