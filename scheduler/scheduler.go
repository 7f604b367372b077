// Package scheduler runs background jobs on a cron clock.
package scheduler

import (
	"errors"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInterval is returned for a zero or negative job interval.
var ErrInterval = errors.New("scheduler: interval must be positive")

// Service owns the cron clock that background sweeps are registered on.
type Service struct {
	cron *cron.Cron
}

func New(loc *time.Location) *Service {
	return &Service{cron: cron.New(cron.WithLocation(loc))}
}

// ScheduleInterval runs job every interval, rounded down to whole seconds
// with a one second floor.
func (s *Service) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, ErrInterval
	}
	return s.cron.Schedule(cron.Every(interval), cron.FuncJob(job)), nil
}

// Entries reports how many jobs are registered.
func (s *Service) Entries() int {
	return len(s.cron.Entries())
}

func (s *Service) Start() {
	s.cron.Start()
}

// Stop halts the clock and blocks until an in-flight sweep returns.
func (s *Service) Stop() {
	<-s.cron.Stop().Done()
}
