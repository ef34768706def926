package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/teams/{teamID}/schedule", handler.GetTeamSchedule)
	mux.HandleFunc("POST /v1/games/{gameID}/summary", handler.GenerateGameSummary)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/prewarm-schedules", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPrewarmSchedulesJob)))
}
