package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/rhalemsc/ncaam-summarizer/internal/domain/roster"
	"github.com/rhalemsc/ncaam-summarizer/internal/platform/cache"
)

type RosterService struct {
	provider SportsProvider
	cache    *cache.Store
}

func NewRosterService(provider SportsProvider, cacheStore *cache.Store) *RosterService {
	return &RosterService{
		provider: provider,
		cache:    cacheStore,
	}
}

// ListTeams returns every team in the league, sorted by display name.
// The provider is hit at most once per process.
func (s *RosterService) ListTeams(ctx context.Context) ([]roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListTeams")
	defer span.End()

	v, err := s.cache.GetOrLoad(ctx, "roster:teams", func(ctx context.Context) (any, error) {
		teams, err := s.provider.FetchTeams(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch teams: %w", err)
		}
		sort.Slice(teams, func(i, j int) bool {
			return teams[i].DisplayName < teams[j].DisplayName
		})
		return teams, nil
	})
	if err != nil {
		return nil, err
	}

	teams, _ := v.([]roster.Team)
	return append([]roster.Team(nil), teams...), nil
}

// ListSeasons returns the seasons the provider knows about, newest first
// as the provider sends them. The provider is hit at most once per process.
func (s *RosterService) ListSeasons(ctx context.Context) ([]roster.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListSeasons")
	defer span.End()

	v, err := s.cache.GetOrLoad(ctx, "roster:seasons", func(ctx context.Context) (any, error) {
		seasons, err := s.provider.FetchSeasons(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch seasons: %w", err)
		}
		return seasons, nil
	})
	if err != nil {
		return nil, err
	}

	seasons, _ := v.([]roster.Season)
	return append([]roster.Season(nil), seasons...), nil
}
