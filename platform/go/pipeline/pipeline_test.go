package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "abc-123")
	id, ok := TraceID(ctx)
	require.True(t, ok)
	require.Equal(t, "abc-123", id)
}

func TestTraceIDMintedWhenEmpty(t *testing.T) {
	ctx := WithTraceID(context.Background(), "")
	id, ok := TraceID(ctx)
	require.True(t, ok)
	require.NotEmpty(t, id)
}

func TestTraceIDAbsent(t *testing.T) {
	_, ok := TraceID(context.Background())
	require.False(t, ok)
}

func TestSinkFunc(t *testing.T) {
	var got error
	sink := SinkFunc(func(ctx context.Context, err error) { got = err })

	want := errors.New("boom")
	sink.Report(context.Background(), want)
	require.Same(t, want, got)
}
