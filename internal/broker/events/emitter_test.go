package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/BearBump/LlantaBox/internal/broker/messages"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, topic string, key, value []byte) error {
	return m.Called(ctx, topic, key, value).Error(0)
}

func TestEmitter_Publishes(t *testing.T) {
	pm := &publisherMock{}
	pm.On("Publish", mock.Anything, "shop.submissions", []byte("a@b.co"), mock.MatchedBy(func(v []byte) bool {
		var ev messages.SubmissionEvent
		return json.Unmarshal(v, &ev) == nil && ev.Kind == messages.KindContactReceived && ev.ID == "c1"
	})).Return(nil).Once()

	e := NewEmitter(pm, "shop.submissions", time.Second, nil)
	e.Emit(context.Background(), messages.SubmissionEvent{Kind: messages.KindContactReceived, ID: "c1", Email: "a@b.co"})
	e.Flush()
	pm.AssertExpectations(t)
}

func TestEmitter_FailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	pm := &publisherMock{}
	pm.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	e := NewEmitter(pm, "t", time.Second, zap.New(core))
	e.Emit(context.Background(), messages.SubmissionEvent{Kind: messages.KindNewsletterChanged, ID: "s1"})
	e.Flush()
	require.Equal(t, 1, logs.FilterMessage("publish submission event").Len())
}

func TestEmitter_CancelledRequestStillPublishes(t *testing.T) {
	pm := &publisherMock{}
	pm.On("Publish", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEmitter(pm, "t", time.Second, nil)
	e.Emit(ctx, messages.SubmissionEvent{ID: "x"})
	e.Flush()
	pm.AssertExpectations(t)
}

func TestEmitter_NilIsNoop(t *testing.T) {
	e := NewEmitter(nil, "t", time.Second, nil)
	require.Nil(t, e)
	e.Emit(context.Background(), messages.SubmissionEvent{})
	e.Flush()
}
