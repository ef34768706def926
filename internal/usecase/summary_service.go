package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rhalemsc/ncaam-summarizer/internal/domain/narrative"
)

type SummaryService struct {
	provider  SportsProvider
	generator NarrativeGenerator
}

func NewSummaryService(provider SportsProvider, generator NarrativeGenerator) *SummaryService {
	return &SummaryService{
		provider:  provider,
		generator: generator,
	}
}

// Generate produces the sectioned post-game narrative for one game from
// the subject team's point of view. Game detail is fetched fresh on every
// call: box scores get corrected after the fact, so stale detail is worse
// than the extra request.
func (s *SummaryService) Generate(ctx context.Context, gameID, teamName string) (narrative.Sections, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SummaryService.Generate")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	teamName = strings.TrimSpace(teamName)
	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	if teamName == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	detail, err := s.provider.FetchGameSummary(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetch game summary: %w", err)
	}

	detail.StripEditorial()
	prompt := BuildPrompt(detail, teamName)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		// Both sentinels stay in the chain so a breaker-open generator
		// still surfaces as a dependency outage, not a bad gateway.
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return SplitSections(text), nil
}
