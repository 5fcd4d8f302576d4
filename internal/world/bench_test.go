package world

import (
	"context"
	"testing"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/farm"
)

// BenchmarkOvernightSkip measures a full sleep's worth of one-minute ticks
// over a populated world
func BenchmarkOvernightSkip(b *testing.B) {
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		w := newTestWorld(b, domain.NewTimestamp(1, 22, 0), farm.DefaultRules())
		w.populate(b)
		target := w.clock.Now().NextDayAt(6)
		b.StartTimer()

		if err := w.clock.Skip(ctx, target); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSnapshotRoundTrip(b *testing.B) {
	ctx := context.Background()
	w := newTestWorld(b, domain.NewTimestamp(1, 9, 0), farm.DefaultRules())
	w.populate(b)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := w.coord.ImportSnapshot(ctx, w.coord.ExportSnapshot()); err != nil {
			b.Fatal(err)
		}
	}
}
