package world

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/farmstead/internal/catalog"
	"github.com/osse101/farmstead/internal/clock"
	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/farm"
	"github.com/osse101/farmstead/internal/incubation"
	"github.com/osse101/farmstead/internal/inventory"
	"github.com/osse101/farmstead/internal/location"
	"github.com/osse101/farmstead/internal/player"
	"github.com/osse101/farmstead/internal/relationship"
	"github.com/osse101/farmstead/internal/shipping"
)

type memoryStore struct {
	mu    sync.Mutex
	saves map[string]*domain.Snapshot
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{saves: make(map[string]*domain.Snapshot)}
}

func (s *memoryStore) Save(_ context.Context, slot string, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saves[slot] = snap.Clone()
	return nil
}

func (s *memoryStore) Load(_ context.Context, slot string) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	snap, ok := s.saves[slot]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return snap.Clone(), nil
}

type eventLog struct {
	mu     sync.Mutex
	events []event.Event
}

func (l *eventLog) Publish(_ context.Context, evt event.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
	return nil
}

func (l *eventLog) count(t event.Type) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

type testWorld struct {
	coord     *Coordinator
	clock     *clock.Clock
	farm      *farm.Farm
	inventory *inventory.Inventory
	wallet    *player.Wallet
	book      *relationship.Book
	incubator *incubation.Incubator
	bin       *shipping.Bin
	location  *location.Tracker
	store     *memoryStore
	events    *eventLog
}

func newTestWorld(t testing.TB, start domain.Timestamp, rules farm.Rules) *testWorld {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	w := &testWorld{
		clock:    clock.New(start),
		wallet:   player.NewWallet(player.StartingMoney),
		book:     relationship.NewBook(),
		location: location.NewTracker(domain.LocationHome),
		store:    newMemoryStore(),
		events:   &eventLog{},
	}
	w.farm = farm.New(rules, cat)
	w.inventory = inventory.New(3, 4, cat)
	w.incubator = incubation.New(incubation.DefaultConfig(), w.inventory, w.events, w.clock)
	w.bin = shipping.NewBin(cat, w.wallet, w.events, w.clock)
	w.coord = NewCoordinator(Config{ShipHour: DefaultShipHour, PlotCount: 4}, Deps{
		Clock:         w.clock,
		Farm:          w.farm,
		Shipper:       w.bin,
		Incubator:     w.incubator,
		Inventory:     w.inventory,
		Wallet:        w.wallet,
		Relationships: w.book,
		Location:      w.location,
		Catalog:       cat,
		Store:         w.store,
		Publisher:     w.events,
	})
	w.clock.Register(w.coord)
	w.clock.Register(w.coord.SceneTracker())
	return w
}

// populate gives the world a bit of everything so snapshots are not trivial
func (w *testWorld) populate(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, w.coord.MoveTo(ctx, domain.LocationFarm))
	require.NoError(t, w.inventory.Add("hoe", 1))
	require.NoError(t, w.inventory.Add("turnip_seeds", 5))
	require.NoError(t, w.inventory.Add("egg", 1))
	require.NoError(t, w.coord.Till(ctx, 0))
	require.NoError(t, w.coord.Till(ctx, 1))
	require.NoError(t, w.coord.Water(ctx, 0))
	_, err := w.coord.Plant(ctx, 0, "turnip_seeds")
	require.NoError(t, err)
	_, err = w.coord.Plant(ctx, 1, "turnip_seeds")
	require.NoError(t, err)
	_, err = w.coord.Incubate(ctx, 2)
	require.NoError(t, err)
	_, err = w.coord.Talk(ctx, "ana")
	require.NoError(t, err)
	require.NoError(t, w.coord.MoveTo(ctx, domain.LocationTown))
}

// orderRecorder implements the collaborators the tick order depends on and
// logs every step it sees
type orderRecorder struct {
	steps   []string
	shipErr error
}

func (r *orderRecorder) ShipItems(context.Context) error {
	r.steps = append(r.steps, StepShipping)
	return r.shipErr
}
func (r *orderRecorder) Add(string, int) error   { return nil }
func (r *orderRecorder) Pending() map[string]int { return nil }

func (r *orderRecorder) IsOnFarm() bool {
	r.steps = append(r.steps, StepFarm)
	return false
}
func (r *orderRecorder) Current() domain.Location { return domain.LocationTown }
func (r *orderRecorder) MoveTo(domain.Location) (domain.Location, error) {
	return "", errors.New("not supported")
}

func (r *orderRecorder) UpdateEggs(context.Context) error {
	r.steps = append(r.steps, StepIncubation)
	return nil
}
func (r *orderRecorder) Incubate(context.Context, int) (domain.EggIncubation, error) {
	return domain.EggIncubation{}, nil
}
func (r *orderRecorder) Eggs() []domain.EggIncubation          { return nil }
func (r *orderRecorder) Validate([]domain.EggIncubation) error { return nil }
func (r *orderRecorder) Load([]domain.EggIncubation) error     { return nil }

type recordingBook struct {
	*relationship.Book
	r *orderRecorder
}

func (b recordingBook) ResetDaily() int {
	b.r.steps = append(b.r.steps, StepDailyReset)
	return b.Book.ResetDaily()
}

func newOrderedCoordinator(t *testing.T, shipHour int) (*Coordinator, *orderRecorder) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	r := &orderRecorder{}
	coord := NewCoordinator(Config{ShipHour: shipHour}, Deps{
		Clock:         clock.New(domain.StartOfGame()),
		Farm:          farm.New(farm.DefaultRules(), cat),
		Shipper:       r,
		Incubator:     r,
		Location:      r,
		Relationships: recordingBook{Book: relationship.NewBook(), r: r},
	})
	return coord, r
}
