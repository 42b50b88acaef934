package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	sweeps atomic.Int64
}

func (c *countingSweeper) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	c.sweeps.Add(1)
	return 2, nil
}

func TestCleanupServiceSweepsPeriodically(t *testing.T) {
	sweeper := &countingSweeper{}
	svc := NewCleanupService(sweeper, nil, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc.Start(ctx)
	defer svc.Stop()

	assert.Eventually(t, func() bool {
		return sweeper.sweeps.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}
