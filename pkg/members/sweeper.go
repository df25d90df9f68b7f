package members

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/platefwd/orderdesk/pkg/observability"
)

// Sweeper periodically removes expired invitations.
type Sweeper struct {
	service *Service
	logger  *observability.Logger
	cron    *cron.Cron
}

// NewSweeper creates a sweeper; Start must be called to schedule it.
func NewSweeper(service *Service, logger *observability.Logger) *Sweeper {
	return &Sweeper{
		service: service,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Start schedules the hourly sweep. Returns an error only when the
// schedule expression is invalid.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.service.CleanupExpiredInvitations(ctx); err != nil {
			s.logger.WithError(err).Error("invitation sweep failed")
			return
		}
		s.logger.Debug("invitation sweep completed")
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
