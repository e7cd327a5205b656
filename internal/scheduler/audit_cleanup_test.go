package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfshare/shelfshare/internal/tasks"
)

// channelCleaner reports each cleanup cutoff it receives.
type channelCleaner struct {
	cutoffs chan time.Time
}

func (c *channelCleaner) DeleteOldEvents(olderThan time.Time) (int64, error) {
	c.cutoffs <- olderThan
	return 0, nil
}

func setupTaskClient(t *testing.T) *tasks.Client {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	cfg := tasks.DefaultConfig()
	cfg.Workers = 1

	client, err := tasks.NewClient(dbPath, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestScheduler_StartRejectsInvalidSchedule(t *testing.T) {
	client := setupTaskClient(t)

	s := NewAuditCleanupScheduler(client, "not a cron expression", 30)
	err := s.Start()
	assert.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	client := setupTaskClient(t)

	s := NewAuditCleanupScheduler(client, "0 3 * * *", 30)
	require.NoError(t, s.Start())
	require.NoError(t, s.Start(), "second start is a no-op")
	s.Stop()
	s.Stop()
}

func TestScheduler_EnqueuedTaskReachesCleaner(t *testing.T) {
	client := setupTaskClient(t)

	cleaner := &channelCleaner{cutoffs: make(chan time.Time, 1)}
	client.Register(tasks.NewCleanupAuditEventsQueue(cleaner))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	s := NewAuditCleanupScheduler(client, "0 3 * * *", 45)
	s.enqueueCleanup()

	select {
	case cutoff := <-cleaner.cutoffs:
		expected := time.Now().AddDate(0, 0, -45)
		assert.WithinDuration(t, expected, cutoff, time.Minute, "cutoff reflects the configured retention")
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup task was not processed within timeout")
	}
}
