package scheduler

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := New(quietLogger())
	assert.Error(t, s.Add("every day", func() {}))
}

func TestScheduler_RunsJobUntilCancelled(t *testing.T) {
	s := New(quietLogger())
	var runs atomic.Int32
	require.NoError(t, s.Add("@every 1s", func() { runs.Add(1) }))

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	assert.GreaterOrEqual(t, runs.Load(), int32(1))
}

func TestCronLogger_Fields(t *testing.T) {
	l := cronLogger{log: quietLogger()}
	f := l.fields([]any{"entry", 1, "dangling"})
	assert.Equal(t, logrus.Fields{"entry": 1}, f)
}
