package app

import (
	"context"
	"log"
	"time"
)

// OverdueExpirer is implemented by PaymentService.
type OverdueExpirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

// PaymentSweeper periodically expires overdue pending payments so an order
// whose payment is never queried again does not stay PENDING forever. The
// read path performs the same transition lazily; the sweeper only adds
// liveness, never a different outcome.
type PaymentSweeper struct {
	payments OverdueExpirer
	interval time.Duration
	logger   *log.Logger
}

func NewPaymentSweeper(payments OverdueExpirer, interval time.Duration, logger *log.Logger) *PaymentSweeper {
	if logger == nil {
		logger = log.Default()
	}
	return &PaymentSweeper{
		payments: payments,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps until ctx is cancelled. The first sweep happens immediately.
func (s *PaymentSweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

func (s *PaymentSweeper) sweep(ctx context.Context) {
	expired, err := s.payments.ExpireOverdue(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Printf("payment sweep failed: %v", err)
		return
	}
	if expired > 0 {
		s.logger.Printf("payment sweep expired %d overdue payments", expired)
	}
}
