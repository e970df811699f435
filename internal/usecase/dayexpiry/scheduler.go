// Package dayexpiry implements the Day-Expiry Scheduler (SPEC_FULL.md
// §4.5): a single long-lived worker that, at a configured daily cutoff,
// cancels every resting GoodForDay order in one batched critical section.
package dayexpiry

import (
	"sync"
	"time"

	"github.com/kavehhm/Multi-Type-Order-Book-Engine/pkg/logger"
)

// BookCanceller is the subset of Book's behaviour the scheduler needs. The
// real implementation is orderbook.Book; tests use a fake.
type BookCanceller interface {
	// ExpireGoodForDay cancels every resting GoodForDay order under the
	// book's own mutex and returns how many were cancelled.
	ExpireGoodForDay() int
}

// Config is the recognised cutoff policy (SPEC_FULL.md §4.5).
type Config struct {
	// CutoffLocalTime is "hh:mm" in Timezone.
	CutoffLocalTime string
	// GuardMS is added to the computed sleep so a wake a few milliseconds
	// early from a coarse timer doesn't fire the sweep before the cutoff.
	GuardMS int
	// Timezone is an IANA id, or "local" for time.Local.
	Timezone string
}

// DefaultConfig matches the distilled spec's stated default.
func DefaultConfig() Config {
	return Config{CutoffLocalTime: "16:00", GuardMS: 100, Timezone: "local"}
}

// Scheduler sleeps until the next cutoff, then asks the book to expire its
// GoodForDay orders, forever, until Stop is called.
type Scheduler struct {
	cfg  Config
	loc  *time.Location
	book BookCanceller
	log  *logger.Logger

	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
	nowFn  func() time.Time
}

// New constructs a Scheduler. log may be nil.
func New(cfg Config, book BookCanceller, log *logger.Logger) (*Scheduler, error) {
	loc, err := resolveLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		cfg:   cfg,
		loc:   loc,
		book:  book,
		log:   log,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
		nowFn: time.Now,
	}, nil
}

func resolveLocation(tz string) (*time.Location, error) {
	if tz == "" || tz == "local" {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

// Run blocks until a shutdown signal is observed, sweeping GoodForDay
// orders at every cutoff along the way. Call it in its own goroutine.
func (s *Scheduler) Run() {
	defer close(s.done)

	for {
		wait := s.nextCutoffIn()
		timer := time.NewTimer(wait)

		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		select {
		case <-s.stop:
			return
		default:
		}

		s.sweep()
	}
}

// Stop signals the worker to exit and blocks until it does.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

func (s *Scheduler) sweep() {
	cancelled := s.book.ExpireGoodForDay()
	if s.log != nil {
		s.log.Info("day-expiry sweep complete", logger.NewField("cancelled", cancelled))
	}
}

// nextCutoffIn computes the duration until the next occurrence of the
// configured cutoff, plus the configured guard.
func (s *Scheduler) nextCutoffIn() time.Duration {
	now := s.nowFn().In(s.loc)
	hour, minute := parseHHMM(s.cfg.CutoffLocalTime)

	cutoff := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, s.loc)
	if !cutoff.After(now) {
		cutoff = cutoff.AddDate(0, 0, 1)
	}

	return cutoff.Sub(now) + time.Duration(s.cfg.GuardMS)*time.Millisecond
}

func parseHHMM(s string) (hour, minute int) {
	hour, minute = 16, 0
	if len(s) != 5 || s[2] != ':' {
		return
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return
	}
	return h, m
}
