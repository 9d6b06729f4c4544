package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"market-service/internal/telemetry"
)

// PublisherMock stands in for the AMQP publisher in audit tests.
type PublisherMock struct {
	mock.Mock
}

var _ telemetry.Publisher = (*PublisherMock)(nil)

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	return m.Called().Error(0)
}
