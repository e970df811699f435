package dayexpiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBook struct {
	calls int
}

func (f *fakeBook) ExpireGoodForDay() int {
	f.calls++
	return f.calls
}

func TestScheduler_NextCutoffInBeforeCutoff(t *testing.T) {
	s, err := New(Config{CutoffLocalTime: "16:00", GuardMS: 100, Timezone: "UTC"}, &fakeBook{}, nil)
	require.NoError(t, err)

	fixed := time.Date(2026, 8, 6, 10, 0, 0, 0, time.UTC)
	s.nowFn = func() time.Time { return fixed }

	wait := s.nextCutoffIn()
	assert.Equal(t, 6*time.Hour+100*time.Millisecond, wait)
}

func TestScheduler_NextCutoffInAfterCutoffRollsToTomorrow(t *testing.T) {
	s, err := New(Config{CutoffLocalTime: "16:00", GuardMS: 100, Timezone: "UTC"}, &fakeBook{}, nil)
	require.NoError(t, err)

	fixed := time.Date(2026, 8, 6, 17, 0, 0, 0, time.UTC)
	s.nowFn = func() time.Time { return fixed }

	wait := s.nextCutoffIn()
	assert.Equal(t, 23*time.Hour+100*time.Millisecond, wait)
}

func TestScheduler_StopBeforeCutoffReturnsPromptly(t *testing.T) {
	s, err := New(Config{CutoffLocalTime: "16:00", GuardMS: 100, Timezone: "UTC"}, &fakeBook{}, nil)
	require.NoError(t, err)
	s.nowFn = func() time.Time { return time.Date(2026, 8, 6, 10, 0, 0, 0, time.UTC) }

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop promptly")
	}
}

func TestScheduler_SweepsOnCutoff(t *testing.T) {
	book := &fakeBook{}
	s, err := New(Config{CutoffLocalTime: "16:00", GuardMS: 0, Timezone: "UTC"}, book, nil)
	require.NoError(t, err)

	callCount := 0
	s.nowFn = func() time.Time {
		callCount++
		if callCount == 1 {
			return time.Date(2026, 8, 6, 15, 59, 59, 900000000, time.UTC)
		}
		return time.Date(2026, 8, 6, 16, 0, 1, 0, time.UTC)
	}

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for book.calls == 0 {
		select {
		case <-deadline:
			t.Fatal("sweep never ran")
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}

	s.Stop()
	<-done
	assert.Equal(t, 1, book.calls)
}

func TestResolveLocation_Local(t *testing.T) {
	loc, err := resolveLocation("local")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestResolveLocation_IANA(t *testing.T) {
	loc, err := resolveLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
