package consumer

import (
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestProcessorCommitsOnSuccess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payload := []byte(`{"user_id":"user-1","workout_type":"RUN","readings":[15000,1,75]}`)

	msg := kafka.Message{
		Topic:     "workout_events",
		Partition: 0,
		Offset:    10,
		Time:      time.Now().UTC(),
		Value:     payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("workout.recorded")},
			{Key: "tenant_id", Value: []byte("tenant-1")},
		},
	}

	reader := &stubReader{
		messages: []kafka.Message{msg},
		after:    contextCanceled,
	}
	handler := &stubHandler{}

	processor := NewProcessor(reader, handler, WithLogger(log.New(testWriter{t}, "", 0)))

	err := processor.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 1, handler.calls)
	require.Equal(t, 1, reader.commitCalls)
	require.Equal(t, "workout.recorded", handler.last.EventType)
	require.Equal(t, "tenant-1", handler.last.TenantID)
	require.JSONEq(t, string(payload), string(handler.last.Payload))
}

func TestProcessorSkipsCommitOnHandlerError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := kafka.Message{
		Topic:     "workout_events",
		Partition: 0,
		Offset:    20,
		Time:      time.Now().UTC(),
		Value:     []byte(`{"user_id":"user-2","workout_type":"SWM","readings":[720,1,80,25,40]}`),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("workout.recorded")},
			{Key: "tenant_id", Value: []byte("tenant-2")},
		},
	}

	reader := &stubReader{
		messages: []kafka.Message{msg},
		after:    contextCanceled,
	}
	handler := &stubHandler{err: errors.New("boom")}

	processor := NewProcessor(reader, handler, WithLogger(log.New(testWriter{t}, "", 0)))

	err := processor.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 1, handler.calls)
	require.Equal(t, 0, reader.commitCalls)
}

func TestProcessorCommitsMalformedMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tests := []struct {
		name string
		msg  kafka.Message
	}{
		{
			name: "missing event_type header",
			msg: kafka.Message{
				Topic: "workout_events",
				Value: []byte(`{"user_id":"user-1"}`),
			},
		},
		{
			name: "invalid json payload",
			msg: kafka.Message{
				Topic: "workout_events",
				Value: []byte(`{"user_id":`),
				Headers: []kafka.Header{
					{Key: "event_type", Value: []byte("workout.recorded")},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &stubReader{
				messages: []kafka.Message{tt.msg},
				after:    contextCanceled,
			}
			handler := &stubHandler{}

			processor := NewProcessor(reader, handler, WithLogger(log.New(testWriter{t}, "", 0)))

			err := processor.Run(ctx)
			require.ErrorIs(t, err, context.Canceled)

			// Committed without handling so the partition keeps moving.
			require.Equal(t, 0, handler.calls)
			require.Equal(t, 1, reader.commitCalls)
		})
	}
}

type stubReader struct {
	messages    []kafka.Message
	index       int
	commitCalls int
	after       func() error
}

func (r *stubReader) FetchMessage(context.Context) (kafka.Message, error) {
	if r.index >= len(r.messages) {
		if r.after != nil {
			return kafka.Message{}, r.after()
		}
		return kafka.Message{}, context.Canceled
	}
	msg := r.messages[r.index]
	r.index++
	return msg, nil
}

func (r *stubReader) CommitMessages(_ context.Context, _ ...kafka.Message) error {
	r.commitCalls++
	return nil
}

func (r *stubReader) Close() error { return nil }

func contextCanceled() error { return context.Canceled }

type stubHandler struct {
	calls int
	err   error
	last  Message
}

func (h *stubHandler) Handle(_ context.Context, msg Message) error {
	h.calls++
	h.last = msg
	return h.err
}

type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (int, error) {
	tw.t.Log(string(p))
	return len(p), nil
}
