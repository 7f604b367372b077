package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sidhant-sriv/equipment-tracker/models"
)

// TaskStore is the part of the task repository the sweep needs.
type TaskStore interface {
	ListRecurringCompleted(ctx context.Context) ([]models.Task, error)
	Save(ctx context.Context, task *models.Task) error
}

// RecurrenceSweep reopens every completed recurring task at its next
// occurrence and returns how many were reopened. A task that fails to save
// is logged and skipped; the first such error is returned after the sweep.
func RecurrenceSweep(ctx context.Context, tasks TaskStore, now time.Time) (int, error) {
	due, err := tasks.ListRecurringCompleted(ctx)
	if err != nil {
		return 0, err
	}

	today := models.Date(now)
	reopened := 0
	var firstErr error
	for i := range due {
		task := &due[i]
		if !task.Reopen(today) {
			continue
		}
		if err := tasks.Save(ctx, task); err != nil {
			log.Printf("recurrence: reopen task %d: %v", task.ID, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("reopen task %d: %w", task.ID, err)
			}
			continue
		}
		reopened++
	}
	return reopened, firstErr
}

// ScheduleRecurrenceSweep runs RecurrenceSweep on s every interval.
func ScheduleRecurrenceSweep(s *Service, interval time.Duration, tasks TaskStore) error {
	_, err := s.ScheduleInterval(interval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := RecurrenceSweep(jobCtx, tasks, time.Now())
		if err != nil {
			log.Printf("recurrence sweep: %v", err)
		}
		if n > 0 {
			log.Printf("recurrence sweep reopened %d task(s)", n)
		}
	})
	return err
}
