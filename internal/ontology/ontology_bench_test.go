package ontology

import (
	"context"
	"testing"
)

func BenchmarkListClasses(b *testing.B) {
	cfg := NewConfig()
	cfg.URL = "file:ontology-bench?mode=memory&cache=shared"
	cfg.Source = fixture
	store, err := Open(context.Background(), cfg)
	if err != nil {
		b.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.ListClasses(ctx); err != nil {
			b.Fatalf("ListClasses: %v", err)
		}
	}
}

func BenchmarkPossibleProperties(b *testing.B) {
	cfg := NewConfig()
	cfg.URL = "file:ontology-bench-props?mode=memory&cache=shared"
	cfg.Source = fixture
	store, err := Open(context.Background(), cfg)
	if err != nil {
		b.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.PossibleProperties(ctx, "Air_Handling_Unit"); err != nil {
			b.Fatalf("PossibleProperties: %v", err)
		}
	}
}
