package clock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/farmstead/internal/domain"
)

type recordingTracker struct {
	seen []domain.Timestamp
}

func (r *recordingTracker) OnTick(_ context.Context, ts domain.Timestamp) error {
	r.seen = append(r.seen, ts)
	return nil
}

type resetCounter struct {
	resets int
}

func (r *resetCounter) OnTick(_ context.Context, ts domain.Timestamp) error {
	if ts.IsMidnight() {
		r.resets++
	}
	return nil
}

func TestAdvanceOneUnit_NotifiesEveryTrackerWithNewTime(t *testing.T) {
	c := New(domain.Timestamp{Day: 1, Hour: 6, Minute: 0})
	a, b := &recordingTracker{}, &recordingTracker{}
	c.Register(a)
	c.Register(b)

	for i := 0; i < 3; i++ {
		require.NoError(t, c.AdvanceOneUnit(context.Background()))
		assert.Equal(t, c.Now(), a.seen[i])
		assert.Equal(t, c.Now(), b.seen[i])
	}

	assert.Len(t, a.seen, 3)
	assert.Len(t, b.seen, 3)
	assert.Equal(t, domain.Timestamp{Day: 1, Hour: 6, Minute: 3}, c.Now())
}

func TestAdvanceOneUnit_RegistrationOrder(t *testing.T) {
	c := New(domain.StartOfGame())
	var order []string
	c.Register(TrackerFunc(func(context.Context, domain.Timestamp) error {
		order = append(order, "first")
		return nil
	}))
	c.Register(TrackerFunc(func(context.Context, domain.Timestamp) error {
		order = append(order, "second")
		return nil
	}))

	require.NoError(t, c.AdvanceOneUnit(context.Background()))

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestRegister_IsIdempotent(t *testing.T) {
	c := New(domain.StartOfGame())
	tr := &recordingTracker{}
	c.Register(tr)
	c.Register(tr)
	c.Register(nil)

	require.NoError(t, c.AdvanceOneUnit(context.Background()))

	assert.Equal(t, 1, c.Trackers())
	assert.Len(t, tr.seen, 1)
}

func TestSkip_DeliversEveryIntermediateTick(t *testing.T) {
	start := domain.Timestamp{Day: 2, Hour: 10, Minute: 0}
	c := New(start)
	tr := &recordingTracker{}
	c.Register(tr)

	const n = 90
	target := start.AddMinutes(n)
	require.NoError(t, c.Skip(context.Background(), target))

	require.Len(t, tr.seen, n)
	for i := 1; i < len(tr.seen); i++ {
		assert.True(t, tr.seen[i].After(tr.seen[i-1]), "tick %d not increasing", i)
	}
	assert.Equal(t, target, tr.seen[n-1])
	assert.Equal(t, target, c.Now())
}

func TestSkip_OvernightFiresResetOnce(t *testing.T) {
	c := New(domain.Timestamp{Day: 5, Hour: 23, Minute: 59})
	tr := &recordingTracker{}
	resets := &resetCounter{}
	c.Register(tr)
	c.Register(resets)

	require.NoError(t, c.Skip(context.Background(), domain.Timestamp{Day: 6, Hour: 6, Minute: 0}))

	// 23:59 -> 00:00 is the first tick, then six hours of minutes follow
	assert.Equal(t, domain.Timestamp{Day: 6, Hour: 0, Minute: 0}, tr.seen[0])
	assert.Len(t, tr.seen, 1+6*domain.MinutesPerHour)
	assert.Equal(t, 1, resets.resets)
}

func TestSkip_TwoMidnightsFireTwoResets(t *testing.T) {
	c := New(domain.Timestamp{Day: 1, Hour: 23, Minute: 58})
	resets := &resetCounter{}
	c.Register(resets)

	require.NoError(t, c.Skip(context.Background(), domain.Timestamp{Day: 3, Hour: 6, Minute: 0}))

	assert.Equal(t, 2, resets.resets)
}

func TestSkip_RejectsTargetNotAfterNow(t *testing.T) {
	now := domain.Timestamp{Day: 4, Hour: 12, Minute: 0}
	c := New(now)
	tr := &recordingTracker{}
	c.Register(tr)

	err := c.Skip(context.Background(), now)
	assert.ErrorIs(t, err, domain.ErrInvalidSkip)

	err = c.Skip(context.Background(), now.AddMinutes(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidSkip)

	assert.Empty(t, tr.seen)
	assert.Equal(t, now, c.Now())
}

func TestAdvanceOneUnit_IsolatesTrackerFailures(t *testing.T) {
	c := New(domain.StartOfGame())
	boom := errors.New("boom")
	c.Register(TrackerFunc(func(context.Context, domain.Timestamp) error {
		panic("tracker exploded")
	}))
	c.Register(TrackerFunc(func(context.Context, domain.Timestamp) error {
		return boom
	}))
	after := &recordingTracker{}
	c.Register(after)

	err := c.AdvanceOneUnit(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTrackerFailed)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "tracker exploded")
	assert.Len(t, after.seen, 1)
}

func TestSkip_ContinuesPastTrackerFailures(t *testing.T) {
	c := New(domain.StartOfGame())
	calls := 0
	c.Register(TrackerFunc(func(context.Context, domain.Timestamp) error {
		calls++
		return errors.New("always fails")
	}))

	err := c.Skip(context.Background(), domain.StartOfGame().AddMinutes(10))

	assert.ErrorIs(t, err, domain.ErrTrackerFailed)
	assert.Equal(t, 10, calls)
	assert.Equal(t, domain.StartOfGame().AddMinutes(10), c.Now())
}

func TestLoad_ReplacesTimeWithoutNotifying(t *testing.T) {
	c := New(domain.StartOfGame())
	tr := &recordingTracker{}
	c.Register(tr)

	target := domain.Timestamp{Day: 9, Hour: 20, Minute: 15}
	require.NoError(t, c.Load(target))

	assert.Equal(t, target, c.Now())
	assert.Empty(t, tr.seen)

	err := c.Load(domain.Timestamp{Day: 1, Hour: 24, Minute: 0})
	assert.ErrorIs(t, err, domain.ErrDeserializationMismatch)
	assert.Equal(t, target, c.Now())
}

func TestWithMinutesPerTick(t *testing.T) {
	c := New(domain.StartOfGame(), WithMinutesPerTick(10))

	require.NoError(t, c.TickJob().Process(context.Background()))

	assert.Equal(t, 10, c.MinutesPerTick())
	assert.Equal(t, domain.Timestamp{Day: 1, Hour: 6, Minute: 10}, c.Now())
}

func TestWithMinutesPerTick_RejectsStepsThatSkipTheHour(t *testing.T) {
	for _, step := range []int{0, 7, 45, 90} {
		c := New(domain.StartOfGame(), WithMinutesPerTick(step))
		assert.Equal(t, DefaultMinutesPerTick, c.MinutesPerTick(), "step %d", step)
	}
}

// hourTracker counts the boundaries the coordinator reacts to
type hourTracker struct {
	seen      []domain.Timestamp
	midnights int
	shipHours int
}

func (h *hourTracker) OnTick(_ context.Context, ts domain.Timestamp) error {
	h.seen = append(h.seen, ts)
	if ts.IsMidnight() {
		h.midnights++
	}
	if ts.Hour == 18 && ts.Minute == 0 {
		h.shipHours++
	}
	return nil
}

func TestSkip_HourStepStillSeesEveryBoundary(t *testing.T) {
	tests := []struct {
		name  string
		step  int
		ticks int
	}{
		{"one minute", 1, 1 + domain.MinutesPerDay + 6*60},
		{"fifteen minutes", 15, (15 + domain.MinutesPerDay + 6*60) / 15},
		{"one hour", 60, (60 + domain.MinutesPerDay + 6*60) / 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(domain.Timestamp{Day: 5, Hour: 23, Minute: 59}, WithMinutesPerTick(tt.step))
			h := &hourTracker{}
			c.Register(h)
			target := domain.Timestamp{Day: 7, Hour: 6, Minute: 0}

			require.NoError(t, c.Skip(context.Background(), target))

			assert.Equal(t, 2, h.midnights)
			assert.Equal(t, 1, h.shipHours)
			assert.Len(t, h.seen, tt.ticks)
			assert.Equal(t, target, h.seen[len(h.seen)-1])
			assert.Equal(t, target, c.Now())
		})
	}
}

func TestLoad_RealignsOffGridTime(t *testing.T) {
	c := New(domain.StartOfGame(), WithMinutesPerTick(60))
	h := &hourTracker{}
	c.Register(h)

	require.NoError(t, c.Load(domain.Timestamp{Day: 5, Hour: 23, Minute: 59}))
	assert.Equal(t, domain.Timestamp{Day: 5, Hour: 23, Minute: 0}, c.Now())
	assert.Empty(t, h.seen)

	require.NoError(t, c.AdvanceOneUnit(context.Background()))
	assert.Equal(t, domain.Timestamp{Day: 6, Hour: 0, Minute: 0}, c.Now())
	assert.Equal(t, 1, h.midnights)
}

func TestSkip_RejectsOffGridTarget(t *testing.T) {
	c := New(domain.StartOfGame(), WithMinutesPerTick(60))
	tr := &recordingTracker{}
	c.Register(tr)

	err := c.Skip(context.Background(), domain.Timestamp{Day: 1, Hour: 8, Minute: 30})

	assert.ErrorIs(t, err, domain.ErrInvalidSkip)
	assert.Empty(t, tr.seen)
}

func TestSkip_StopsWhenContextCancelled(t *testing.T) {
	t.Run("already cancelled", func(t *testing.T) {
		c := New(domain.StartOfGame())
		tr := &recordingTracker{}
		c.Register(tr)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := c.Skip(ctx, domain.Timestamp{Day: 31, Hour: 6, Minute: 0})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, tr.seen)
		assert.Equal(t, domain.StartOfGame(), c.Now())
	})

	t.Run("cancelled mid skip", func(t *testing.T) {
		c := New(domain.StartOfGame())
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ticks := 0
		c.Register(TrackerFunc(func(context.Context, domain.Timestamp) error {
			ticks++
			if ticks == 5 {
				cancel()
			}
			return nil
		}))

		err := c.Skip(ctx, domain.Timestamp{Day: 31, Hour: 6, Minute: 0})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 5, ticks)
		assert.Equal(t, domain.StartOfGame().AddMinutes(5), c.Now())
	})
}

func TestAdvanceOneUnit_StopsAtLastDay(t *testing.T) {
	last := domain.Timestamp{Day: domain.LastDay, Hour: 23, Minute: 59}
	c := New(last)
	tr := &recordingTracker{}
	c.Register(tr)

	err := c.AdvanceOneUnit(context.Background())

	assert.ErrorIs(t, err, domain.ErrClockExhausted)
	assert.Empty(t, tr.seen)
	assert.Equal(t, last, c.Now())

	err = c.Skip(context.Background(), last.NextDayAt(6))
	assert.ErrorIs(t, err, domain.ErrInvalidSkip)
}
