// Package scheduler triggers periodic maintenance by enqueuing tasks on the
// background queue.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/shelfshare/shelfshare/internal/tasks"
)

// AuditCleanupScheduler enqueues the audit retention task on a cron
// schedule.
type AuditCleanupScheduler struct {
	taskClient    *tasks.Client
	schedule      string
	retentionDays int

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewAuditCleanupScheduler creates a new scheduler instance.
func NewAuditCleanupScheduler(taskClient *tasks.Client, schedule string, retentionDays int) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		taskClient:    taskClient,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the schedule. Safe to call once; subsequent calls are no-ops.
func (s *AuditCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.taskClient == nil {
		log.Printf("Audit cleanup scheduler: task queue disabled, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.enqueueCleanup)
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Audit cleanup scheduler: running on schedule %q (retention %d days)", s.schedule, s.retentionDays)
	return nil
}

// Stop halts the schedule and waits for a running enqueue to finish.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Audit cleanup scheduler: stopped")
}

func (s *AuditCleanupScheduler) enqueueCleanup() {
	_, err := s.taskClient.Add(tasks.CleanupAuditEventsTask{
		RetentionDays: s.retentionDays,
	}).Save()
	if err != nil {
		log.Printf("Audit cleanup scheduler: failed to enqueue task: %v", err)
	}
}
