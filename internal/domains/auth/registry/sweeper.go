package registry

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"microblog-backend/internal/domains/auth"
)

// Sweeper periodically drops expired OTP entries so a registry flooded
// with never-verified codes does not grow without bound. Lazy expiry at
// verification time remains the authoritative check.
type Sweeper struct {
	otps     auth.OTPRegistry
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewSweeper(otps auth.OTPRegistry, interval time.Duration) *Sweeper {
	return &Sweeper{
		otps:     otps,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop in a goroutine until Shutdown is called.
func (s *Sweeper) Start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case now := <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				removed, err := s.otps.Sweep(ctx, now)
				cancel()

				if err != nil {
					log.Error().Err(err).Msg("[Sweeper] OTP sweep failed")
					continue
				}
				if removed > 0 {
					log.Info().Int("removed", removed).Msg("[Sweeper] Dropped expired OTP entries")
				}
			}
		}
	}()
}

// Shutdown stops the loop and waits for the in-flight sweep to finish.
func (s *Sweeper) Shutdown() {
	close(s.stop)
	<-s.done
}
