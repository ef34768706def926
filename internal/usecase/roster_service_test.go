package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/rhalemsc/ncaam-summarizer/internal/domain/roster"
	"github.com/rhalemsc/ncaam-summarizer/internal/platform/cache"
)

func TestRosterService_ListTeams_SortsByDisplayName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := newMockSportsProvider(t)
	service := NewRosterService(provider, cache.NewStore(0))

	provider.On("FetchTeams", mock.Anything).Return([]roster.Team{
		{ID: "96", DisplayName: "Kentucky Wildcats"},
		{ID: "52", DisplayName: "Florida Gators"},
		{ID: "333", DisplayName: "Alabama Crimson Tide"},
	}, nil).Once()

	got, err := service.ListTeams(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("unexpected team count: got=%d want=3", len(got))
	}
	wantOrder := []string{"Alabama Crimson Tide", "Florida Gators", "Kentucky Wildcats"}
	for i, want := range wantOrder {
		if got[i].DisplayName != want {
			t.Fatalf("unexpected order at %d: got=%s want=%s", i, got[i].DisplayName, want)
		}
	}
}

func TestRosterService_ListTeams_MemoizesAcrossCalls(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := newMockSportsProvider(t)
	service := NewRosterService(provider, cache.NewStore(0))

	provider.On("FetchTeams", mock.Anything).Return([]roster.Team{
		{ID: "52", DisplayName: "Florida Gators"},
	}, nil).Once()

	for i := 0; i < 3; i++ {
		got, err := service.ListTeams(ctx)
		if err != nil {
			t.Fatalf("list teams (call %d): %v", i, err)
		}
		if len(got) != 1 || got[0].ID != "52" {
			t.Fatalf("unexpected teams (call %d): %+v", i, got)
		}
	}
}

func TestRosterService_ListTeams_PropagatesProviderError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := newMockSportsProvider(t)
	service := NewRosterService(provider, cache.NewStore(0))

	upstreamErr := errors.New("upstream unavailable")
	provider.On("FetchTeams", mock.Anything).Return(nil, upstreamErr).Once()

	if _, err := service.ListTeams(ctx); !errors.Is(err, upstreamErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestRosterService_ListSeasons_MemoizesAcrossCalls(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := newMockSportsProvider(t)
	service := NewRosterService(provider, cache.NewStore(0))

	provider.On("FetchSeasons", mock.Anything).Return([]roster.Season{
		{Year: 2025, DisplayName: "2024-25"},
		{Year: 2024, DisplayName: "2023-24"},
	}, nil).Once()

	for i := 0; i < 3; i++ {
		got, err := service.ListSeasons(ctx)
		if err != nil {
			t.Fatalf("list seasons (call %d): %v", i, err)
		}
		if len(got) != 2 || got[0].Year != 2025 {
			t.Fatalf("unexpected seasons (call %d): %+v", i, got)
		}
	}
}
