package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/rhalemsc/ncaam-summarizer/internal/domain/narrative"
	"github.com/rhalemsc/ncaam-summarizer/internal/domain/roster"
	"github.com/rhalemsc/ncaam-summarizer/internal/domain/schedule"
	"github.com/rhalemsc/ncaam-summarizer/internal/usecase"
)

type Handler struct {
	rosterService     *usecase.RosterService
	scheduleService   *usecase.ScheduleService
	summaryService    *usecase.SummaryService
	prewarmService    *usecase.PrewarmService
	model             string
	prewarmMaxWorkers int
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	scheduleService *usecase.ScheduleService,
	summaryService *usecase.SummaryService,
	prewarmService *usecase.PrewarmService,
	model string,
	prewarmMaxWorkers int,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		rosterService:     rosterService,
		scheduleService:   scheduleService,
		summaryService:    summaryService,
		prewarmService:    prewarmService,
		model:             model,
		prewarmMaxWorkers: prewarmMaxWorkers,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.rosterService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.rosterService.ListSeasons(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonDTO{Year: s.Year, DisplayName: s.DisplayName})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSchedule")
	defer span.End()

	teamID := r.PathValue("teamID")

	season := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("season")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: season must be a positive year", usecase.ErrInvalidInput))
			return
		}
		season = parsed
	}

	entries, err := h.scheduleService.Build(ctx, teamID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "build schedule failed", "team_id", teamID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scheduleEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, scheduleEntryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GenerateGameSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateGameSummary")
	defer span.End()

	gameID := r.PathValue("gameID")

	var req generateSummaryRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sections, err := h.summaryService.Generate(ctx, gameID, req.TeamName)
	if err != nil {
		h.logger.WarnContext(ctx, "generate summary failed", "game_id", gameID, "team_name", req.TeamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryResponseDTO{
		GameID:   gameID,
		TeamID:   req.TeamID,
		TeamName: req.TeamName,
		Model:    h.model,
		Sections: sections,
	})
}

func (h *Handler) RunPrewarmSchedulesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPrewarmSchedulesJob")
	defer span.End()

	var req prewarmSchedulesRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	maxWorkers := req.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = h.prewarmMaxWorkers
	}

	result, err := h.prewarmService.PrewarmSchedules(ctx, usecase.PrewarmInput{
		Season:     req.Season,
		TeamIDs:    req.TeamIDs,
		MaxWorkers: maxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "prewarm schedules failed", "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type generateSummaryRequest struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName" validate:"required,max=120"`
}

type prewarmSchedulesRequest struct {
	TeamIDs    []string `json:"teamIds"`
	Season     int      `json:"season"`
	MaxWorkers int      `json:"maxWorkers"`
}

type teamDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type seasonDTO struct {
	Year        int    `json:"year"`
	DisplayName string `json:"displayName"`
}

type scheduleEntryDTO struct {
	GameID        string `json:"gameId"`
	Date          string `json:"date"`
	Opponent      string `json:"opponent,omitempty"`
	Result        string `json:"result"`
	TeamScore     int    `json:"teamScore"`
	OpponentScore int    `json:"opponentScore"`
	Score         string `json:"score"`
	DisplayLabel  string `json:"displayLabel"`
}

type summaryResponseDTO struct {
	GameID   string             `json:"gameId"`
	TeamID   string             `json:"teamId,omitempty"`
	TeamName string             `json:"teamName"`
	Model    string             `json:"model"`
	Sections narrative.Sections `json:"sections"`
}

func teamToDTO(t roster.Team) teamDTO {
	return teamDTO{ID: t.ID, DisplayName: t.DisplayName}
}

func scheduleEntryToDTO(e schedule.Entry) scheduleEntryDTO {
	return scheduleEntryDTO{
		GameID:        e.GameID,
		Date:          e.Date,
		Opponent:      e.OpponentName,
		Result:        e.Result,
		TeamScore:     e.SubjectScore,
		OpponentScore: e.OpponentScore,
		Score:         e.ScoreLabel,
		DisplayLabel:  e.DisplayLabel(),
	}
}
