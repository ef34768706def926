package usecase

import (
	"context"

	"github.com/rhalemsc/ncaam-summarizer/internal/domain/game"
	"github.com/rhalemsc/ncaam-summarizer/internal/domain/roster"
)

// Season-phase codes on the schedule endpoint.
const (
	SeasonTypeRegular    = 2
	SeasonTypePostseason = 3
)

// ExternalEvent is one schedule event as flattened from the provider
// payload. Fields mirror what the upstream actually guarantees, which is
// very little; every consumer must treat competitors as possibly missing
// or malformed.
type ExternalEvent struct {
	ID          string
	Date        string
	Completed   bool
	Competitors []ExternalCompetitor
}

// ExternalCompetitor is one side of a competition. Score is nil when the
// provider omitted the value. Winner is false unless the provider sent an
// explicit true.
type ExternalCompetitor struct {
	TeamID   string
	TeamName string
	Score    *int
	Winner   bool
}

// SportsProvider is the upstream sports-data boundary.
type SportsProvider interface {
	FetchTeams(ctx context.Context) ([]roster.Team, error)
	FetchSeasons(ctx context.Context) ([]roster.Season, error)
	// FetchSchedule retrieves one phase of a team's schedule. A zero
	// season fetches the provider's current schedule with no phase
	// parameter.
	FetchSchedule(ctx context.Context, teamID string, season int, seasonType int) ([]ExternalEvent, error)
	FetchGameSummary(ctx context.Context, gameID string) (game.Detail, error)
}

// NarrativeGenerator is the text-generation boundary. It is opaque: one
// prompt in, one completion out, or an error that aborts the pipeline.
type NarrativeGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
