package listing

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rshade/contentlist/internal/cache"
	"github.com/rshade/contentlist/internal/filter"
	"github.com/rshade/contentlist/internal/pagination"
)

// BenchmarkDescriptorKey benchmarks cache key derivation for a filtered page.
func BenchmarkDescriptorKey(b *testing.B) {
	b.ReportAllocs()
	d := BuildQueryDescriptor(filter.Criteria{
		SearchQuery:   "epel",
		Versions:      []string{"9", "8"},
		Architectures: []string{"x86_64", "aarch64"},
		Statuses:      []string{filter.StatusValid, filter.StatusInvalid},
	}, pagination.PageState{Page: 3, PageSize: 50})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Key()
	}
}

// BenchmarkRefresh_Cached benchmarks a refresh served from the memory cache.
func BenchmarkRefresh_Cached(b *testing.B) {
	b.ReportAllocs()
	e, err := NewEngine(newFakeSource(1000), Options{
		Cache:  cache.NewMemoryStore(cache.DefaultMemoryEntries, cache.DefaultTTLConfig().Duration),
		Logger: zerolog.Nop(),
	})
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	if _, err = e.Refresh(ctx); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = e.Refresh(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSnapshot benchmarks building a view of a populated page.
func BenchmarkSnapshot(b *testing.B) {
	b.ReportAllocs()
	e, err := NewEngine(newFakeSource(1000), Options{Logger: zerolog.Nop()})
	if err != nil {
		b.Fatal(err)
	}
	if err = e.SetPageSize(100, 1); err != nil {
		b.Fatal(err)
	}
	if _, err = e.Refresh(context.Background()); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Snapshot()
	}
}
