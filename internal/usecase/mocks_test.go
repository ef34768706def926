package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rhalemsc/ncaam-summarizer/internal/domain/game"
	"github.com/rhalemsc/ncaam-summarizer/internal/domain/roster"
)

type mockSportsProvider struct {
	mock.Mock
}

func newMockSportsProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockSportsProvider {
	m := &mockSportsProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockSportsProvider) FetchTeams(ctx context.Context) ([]roster.Team, error) {
	args := m.Called(ctx)
	teams, _ := args.Get(0).([]roster.Team)
	return teams, args.Error(1)
}

func (m *mockSportsProvider) FetchSeasons(ctx context.Context) ([]roster.Season, error) {
	args := m.Called(ctx)
	seasons, _ := args.Get(0).([]roster.Season)
	return seasons, args.Error(1)
}

func (m *mockSportsProvider) FetchSchedule(ctx context.Context, teamID string, season int, seasonType int) ([]ExternalEvent, error) {
	args := m.Called(ctx, teamID, season, seasonType)
	events, _ := args.Get(0).([]ExternalEvent)
	return events, args.Error(1)
}

func (m *mockSportsProvider) FetchGameSummary(ctx context.Context, gameID string) (game.Detail, error) {
	args := m.Called(ctx, gameID)
	detail, _ := args.Get(0).(game.Detail)
	return detail, args.Error(1)
}

type mockNarrativeGenerator struct {
	mock.Mock
}

func newMockNarrativeGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockNarrativeGenerator {
	m := &mockNarrativeGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockNarrativeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
