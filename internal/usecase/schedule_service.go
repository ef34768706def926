package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rhalemsc/ncaam-summarizer/internal/domain/schedule"
	"github.com/rhalemsc/ncaam-summarizer/internal/platform/cache"
)

type ScheduleService struct {
	provider SportsProvider
	cache    *cache.Store
}

func NewScheduleService(provider SportsProvider, cacheStore *cache.Store) *ScheduleService {
	return &ScheduleService{
		provider: provider,
		cache:    cacheStore,
	}
}

// Build assembles the completed-games schedule for one team. A positive
// season fetches the regular-season and postseason phases for that year
// and merges them, regular season first; a zero season fetches the
// provider's current schedule. Results are memoized per (team, season).
func (s *ScheduleService) Build(ctx context.Context, teamID string, season int) ([]schedule.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Build")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if season < 0 {
		return nil, fmt.Errorf("%w: season must not be negative", ErrInvalidInput)
	}

	key := fmt.Sprintf("schedule:%s:%d", teamID, season)
	v, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		events, err := s.fetchPhases(ctx, teamID, season)
		if err != nil {
			return nil, err
		}
		return buildEntries(teamID, events), nil
	})
	if err != nil {
		return nil, err
	}

	entries, _ := v.([]schedule.Entry)
	return append([]schedule.Entry(nil), entries...), nil
}

func (s *ScheduleService) fetchPhases(ctx context.Context, teamID string, season int) ([]ExternalEvent, error) {
	if season == 0 {
		events, err := s.provider.FetchSchedule(ctx, teamID, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("fetch schedule: %w", err)
		}
		return events, nil
	}

	regular, err := s.provider.FetchSchedule(ctx, teamID, season, SeasonTypeRegular)
	if err != nil {
		return nil, fmt.Errorf("fetch regular season schedule: %w", err)
	}
	postseason, err := s.provider.FetchSchedule(ctx, teamID, season, SeasonTypePostseason)
	if err != nil {
		return nil, fmt.Errorf("fetch postseason schedule: %w", err)
	}

	return append(regular, postseason...), nil
}

// buildEntries filters the merged event list down to completed games and
// derives the subject team's result for each. Events repeated across
// phases keep their first occurrence. Events where the subject team does
// not appear among the competitors are dropped.
func buildEntries(teamID string, events []ExternalEvent) []schedule.Entry {
	seen := make(map[string]struct{}, len(events))
	entries := make([]schedule.Entry, 0, len(events))

	for _, ev := range events {
		if ev.ID == "" {
			continue
		}
		if _, dup := seen[ev.ID]; dup {
			continue
		}
		seen[ev.ID] = struct{}{}

		if !ev.Completed {
			continue
		}

		subject, opponent, found := pickSides(teamID, ev.Competitors)
		if !found {
			continue
		}

		result := schedule.ResultLoss
		if subject.Winner {
			result = schedule.ResultWin
		}

		subjectScore := scoreValue(subject.Score)
		opponentScore := scoreValue(opponent.Score)

		entries = append(entries, schedule.Entry{
			GameID:        ev.ID,
			Date:          normalizeDate(ev.Date),
			OpponentName:  opponent.TeamName,
			Result:        result,
			SubjectScore:  subjectScore,
			OpponentScore: opponentScore,
			ScoreLabel:    schedule.FormatScoreLabel(subjectScore, opponentScore),
		})
	}

	return entries
}

func pickSides(teamID string, competitors []ExternalCompetitor) (subject, opponent ExternalCompetitor, found bool) {
	for _, c := range competitors {
		if c.TeamID == teamID {
			subject = c
			found = true
		} else if opponent.TeamID == "" && opponent.TeamName == "" {
			opponent = c
		}
	}
	return subject, opponent, found
}

func scoreValue(score *int) int {
	if score == nil {
		return 0
	}
	return *score
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02",
}

// normalizeDate reduces a provider timestamp to its calendar date. The
// provider has shipped at least two timestamp shapes, so unparseable
// values fall back to the raw date prefix rather than an empty string.
func normalizeDate(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if len(raw) >= 10 {
		return raw[:10]
	}
	return raw
}
