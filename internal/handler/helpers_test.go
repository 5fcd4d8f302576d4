package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/sleep"
	"github.com/osse101/farmstead/internal/world"
)

// inlineExecutor runs jobs on the calling goroutine
type inlineExecutor struct {
	calls int
	err   error
}

func (e *inlineExecutor) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	e.calls++
	if e.err != nil {
		return e.err
	}
	return fn(ctx)
}

// MockWorld mocks the World interface
type MockWorld struct {
	mock.Mock
}

func (m *MockWorld) Status() world.Status {
	return m.Called().Get(0).(world.Status)
}

func (m *MockWorld) MoveTo(ctx context.Context, loc domain.Location) error {
	return m.Called(ctx, loc).Error(0)
}

func (m *MockWorld) Till(ctx context.Context, plotID int) error {
	return m.Called(ctx, plotID).Error(0)
}

func (m *MockWorld) Water(ctx context.Context, plotID int) error {
	return m.Called(ctx, plotID).Error(0)
}

func (m *MockWorld) Plant(ctx context.Context, plotID int, seedItem string) (domain.Crop, error) {
	args := m.Called(ctx, plotID, seedItem)
	return args.Get(0).(domain.Crop), args.Error(1)
}

func (m *MockWorld) Harvest(ctx context.Context, plotID int) (string, error) {
	args := m.Called(ctx, plotID)
	return args.String(0), args.Error(1)
}

func (m *MockWorld) ClearObstacle(ctx context.Context, plotID int) (domain.ObstacleStatus, error) {
	args := m.Called(ctx, plotID)
	return args.Get(0).(domain.ObstacleStatus), args.Error(1)
}

func (m *MockWorld) Equip(ctx context.Context, t domain.InventoryType, index int) (domain.ItemSlot, error) {
	args := m.Called(ctx, t, index)
	return args.Get(0).(domain.ItemSlot), args.Error(1)
}

func (m *MockWorld) Ship(ctx context.Context, itemID string, quantity int) error {
	return m.Called(ctx, itemID, quantity).Error(0)
}

func (m *MockWorld) Buy(ctx context.Context, itemID string, quantity int) error {
	return m.Called(ctx, itemID, quantity).Error(0)
}

func (m *MockWorld) Talk(ctx context.Context, npcID string) (domain.RelationshipRecord, error) {
	args := m.Called(ctx, npcID)
	return args.Get(0).(domain.RelationshipRecord), args.Error(1)
}

func (m *MockWorld) Gift(ctx context.Context, npcID, itemID string) (domain.RelationshipRecord, error) {
	args := m.Called(ctx, npcID, itemID)
	return args.Get(0).(domain.RelationshipRecord), args.Error(1)
}

func (m *MockWorld) Incubate(ctx context.Context, incubatorID int) (domain.EggIncubation, error) {
	args := m.Called(ctx, incubatorID)
	return args.Get(0).(domain.EggIncubation), args.Error(1)
}

func (m *MockWorld) ExportSnapshot() *domain.Snapshot {
	return m.Called().Get(0).(*domain.Snapshot)
}

func (m *MockWorld) ImportSnapshot(ctx context.Context, s *domain.Snapshot) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockWorld) Save(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockWorld) Load(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockWorld) SaveSlot() string {
	return "default"
}

// fakeClock advances one minute per tick and fails the listed ticks
type fakeClock struct {
	now      domain.Timestamp
	failTick map[int]bool
	ticks    int
	skips    int
	skipErr  error
}

func (c *fakeClock) Now() domain.Timestamp { return c.now }
func (c *fakeClock) MinutesPerTick() int   { return 1 }

func (c *fakeClock) AdvanceOneUnit(context.Context) error {
	c.ticks++
	c.now = c.now.AddMinutes(1)
	if c.failTick[c.ticks] {
		return domain.ErrTrackerFailed
	}
	return nil
}

func (c *fakeClock) Skip(_ context.Context, target domain.Timestamp) error {
	c.skips++
	if c.skipErr != nil {
		return c.skipErr
	}
	c.now = target
	return nil
}

type fakeTicks struct{ paused bool }

func (f *fakeTicks) Pause()       { f.paused = true }
func (f *fakeTicks) Resume()      { f.paused = false }
func (f *fakeTicks) Paused() bool { return f.paused }

// fakeSleeper returns canned results
type fakeSleeper struct {
	state     sleep.State
	startErr  error
	cancelErr error
	fadeErr   error
	result    sleep.Result
	block     bool
}

func (s *fakeSleeper) State() sleep.State { return s.state }

func (s *fakeSleeper) Request(context.Context) error { return s.startErr }

func (s *fakeSleeper) Start(context.Context) (string, error) {
	if s.startErr != nil {
		return "", s.startErr
	}
	s.state = sleep.StateWaitingForFade
	return "session-1", nil
}

func (s *fakeSleeper) Cancel() error            { return s.cancelErr }
func (s *fakeSleeper) OnFadeOutComplete() error { return s.fadeErr }

func (s *fakeSleeper) Wait(ctx context.Context) (sleep.Result, error) {
	if s.block {
		<-ctx.Done()
		return sleep.Result{}, ctx.Err()
	}
	return s.result, s.result.Err
}

type fixture struct {
	h       *GameHandlers
	world   *MockWorld
	clock   *fakeClock
	ticks   *fakeTicks
	sleeper *fakeSleeper
	exec    *inlineExecutor
}

func newFixture() *fixture {
	f := &fixture{
		world:   &MockWorld{},
		clock:   &fakeClock{now: domain.NewTimestamp(1, 6, 0), failTick: map[int]bool{}},
		ticks:   &fakeTicks{},
		sleeper: &fakeSleeper{state: sleep.StateIdle},
		exec:    &inlineExecutor{},
	}
	f.h = NewGameHandlers(GameDeps{
		Executor: f.exec,
		World:    f.world,
		Clock:    f.clock,
		Ticks:    f.ticks,
		Sleep:    f.sleeper,
	})
	return f
}

func serve(t *testing.T, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
