package camunda

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandContext_DetachedFromCaller(t *testing.T) {
	expired, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-expired.Done()

	ctx, release := CommandContext()
	defer release()

	assert.NoError(t, ctx.Err())
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(CommandTimeout), deadline, time.Second)
}

func TestActivationTimeout_CoversResolution(t *testing.T) {
	assert.Equal(t, 30*time.Second+CommandTimeout, ActivationTimeout(30*time.Second))
	assert.Greater(t, ActivationTimeout(time.Second), time.Second)
}
