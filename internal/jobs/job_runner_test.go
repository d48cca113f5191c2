package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"equipment-rental-backend/internal/config"
	"equipment-rental-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockQuoteService implements only what the jobs call.
type MockQuoteService struct {
	service.QuoteService
	mock.Mock
}

func (m *MockQuoteService) ExpireStaleQuotes(ctx context.Context, today time.Time) ([]string, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newTestRunner(quotes service.QuoteService) *JobRunner {
	jr := NewJobRunner(&Services{Quotes: quotes}, &config.Config{})
	jr.now = func() time.Time { return time.Date(2026, 10, 15, 2, 0, 0, 0, time.UTC) }
	return jr
}

func TestExpireStaleQuotes(t *testing.T) {
	today := time.Date(2026, 10, 15, 2, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		quotes := new(MockQuoteService)
		quotes.On("ExpireStaleQuotes", mock.Anything, today).Return([]string{"q-1", "q-2"}, nil)

		err := newTestRunner(quotes).ExpireStaleQuotes()
		assert.NoError(t, err)
		quotes.AssertExpectations(t)
	})

	t.Run("Service error is returned", func(t *testing.T) {
		quotes := new(MockQuoteService)
		quotes.On("ExpireStaleQuotes", mock.Anything, today).Return(nil, errors.New("db down"))

		err := newTestRunner(quotes).ExpireStaleQuotes()
		assert.EqualError(t, err, "db down")
	})

	t.Run("Panic is recovered", func(t *testing.T) {
		quotes := new(MockQuoteService)
		quotes.On("ExpireStaleQuotes", mock.Anything, today).Run(func(mock.Arguments) {
			panic("boom")
		}).Return(nil, nil)

		var err error
		assert.NotPanics(t, func() { err = newTestRunner(quotes).ExpireStaleQuotes() })
		assert.ErrorContains(t, err, "panicked: boom")
	})
}

func TestRun(t *testing.T) {
	quotes := new(MockQuoteService)
	quotes.On("ExpireStaleQuotes", mock.Anything, mock.Anything).Return([]string{}, nil)
	jr := newTestRunner(quotes)

	assert.NoError(t, jr.Run(JobExpireStaleQuotes))
	assert.ErrorContains(t, jr.Run("send-invoices"), "unknown job")
	assert.Equal(t, []string{JobExpireStaleQuotes}, jr.JobNames())
}
