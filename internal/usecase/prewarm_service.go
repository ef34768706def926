package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	prewarmStatusSuccess = "success"
	prewarmStatusFailed  = "failed"

	defaultPrewarmWorkers = 8
)

type PrewarmInput struct {
	Season int
	// TeamIDs narrows the run to specific teams; empty means every team
	// on the roster.
	TeamIDs    []string
	MaxWorkers int
}

type PrewarmResult struct {
	TeamCount    int                 `json:"team_count"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	WorkerCount  int                 `json:"worker_count"`
	Season       int                 `json:"season"`
	Tasks        []PrewarmTaskResult `json:"tasks"`
}

type PrewarmTaskResult struct {
	TeamID     string `json:"team_id"`
	TeamName   string `json:"team_name,omitempty"`
	Status     string `json:"status"`
	Games      int    `json:"games"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// PrewarmService hydrates the schedule cache ahead of traffic so that the
// first schedule request per team does not pay the two-phase upstream
// round trip.
type PrewarmService struct {
	roster    *RosterService
	schedules *ScheduleService
}

func NewPrewarmService(roster *RosterService, schedules *ScheduleService) *PrewarmService {
	return &PrewarmService{
		roster:    roster,
		schedules: schedules,
	}
}

func (s *PrewarmService) PrewarmSchedules(ctx context.Context, input PrewarmInput) (PrewarmResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PrewarmService.PrewarmSchedules")
	defer span.End()

	if input.Season < 0 {
		return PrewarmResult{}, fmt.Errorf("%w: season must not be negative", ErrInvalidInput)
	}

	targets, err := s.resolveTargets(ctx, input.TeamIDs)
	if err != nil {
		return PrewarmResult{}, err
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultPrewarmWorkers
	}
	if workerCount > len(targets) && len(targets) > 0 {
		workerCount = len(targets)
	}

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return PrewarmResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]PrewarmTaskResult, len(targets))

	var workers sync.WaitGroup
	for i, target := range targets {
		i, target := i, target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := PrewarmTaskResult{
				TeamID:   target.id,
				TeamName: target.name,
			}

			entries, err := s.schedules.Build(ctx, target.id, input.Season)
			if err != nil {
				row.Status = prewarmStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = prewarmStatusSuccess
				row.Games = len(entries)
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()
			results[i] = row
		}); err != nil {
			workers.Done()
			results[i] = PrewarmTaskResult{
				TeamID:   target.id,
				TeamName: target.name,
				Status:   prewarmStatusFailed,
				Message:  fmt.Sprintf("submit task: %v", err),
			}
			failedCount.Add(1)
		}
	}
	workers.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].TeamID < results[j].TeamID
	})

	return PrewarmResult{
		TeamCount:    len(targets),
		SuccessCount: int(successCount.Load()),
		FailedCount:  int(failedCount.Load()),
		WorkerCount:  workerCount,
		Season:       input.Season,
		Tasks:        results,
	}, nil
}

type prewarmTarget struct {
	id   string
	name string
}

func (s *PrewarmService) resolveTargets(ctx context.Context, teamIDs []string) ([]prewarmTarget, error) {
	teams, err := s.roster.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	if len(teamIDs) == 0 {
		targets := make([]prewarmTarget, 0, len(teams))
		for _, t := range teams {
			targets = append(targets, prewarmTarget{id: t.ID, name: t.DisplayName})
		}
		return targets, nil
	}

	byID := make(map[string]string, len(teams))
	for _, t := range teams {
		byID[t.ID] = t.DisplayName
	}

	targets := make([]prewarmTarget, 0, len(teamIDs))
	for _, id := range teamIDs {
		name, known := byID[id]
		if !known {
			return nil, fmt.Errorf("%w: team=%s", ErrNotFound, id)
		}
		targets = append(targets, prewarmTarget{id: id, name: name})
	}
	return targets, nil
}
