package espn

import (
	"strconv"
	"strings"
)

type teamsEnvelope struct {
	Sports []sportPayload `json:"sports"`
}

type sportPayload struct {
	Leagues []leaguePayload `json:"leagues"`
}

type leaguePayload struct {
	Teams []teamWrapper `json:"teams"`
}

type teamWrapper struct {
	Team teamPayload `json:"team"`
}

type teamPayload struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type seasonsEnvelope struct {
	Seasons []seasonPayload `json:"seasons"`
}

type seasonPayload struct {
	Year        int    `json:"year"`
	DisplayName string `json:"displayName"`
}

type scheduleEnvelope struct {
	Events []eventPayload `json:"events"`
}

type eventPayload struct {
	ID           string               `json:"id"`
	Date         string               `json:"date"`
	Competitions []competitionPayload `json:"competitions"`
}

type competitionPayload struct {
	Status      statusPayload       `json:"status"`
	Competitors []competitorPayload `json:"competitors"`
}

type statusPayload struct {
	Type statusTypePayload `json:"type"`
}

type statusTypePayload struct {
	Completed bool `json:"completed"`
}

type competitorPayload struct {
	Winner bool         `json:"winner"`
	Team   teamPayload  `json:"team"`
	Score  scorePayload `json:"score"`
}

type scorePayload struct {
	Value        *float64 `json:"value"`
	DisplayValue string   `json:"displayValue"`
}

// points resolves the competitor score to an integer. The provider ships
// the numeric value on completed games but has been seen omitting it and
// carrying only the display string.
func (s scorePayload) points() *int {
	if s.Value != nil {
		v := int(*s.Value)
		return &v
	}
	if display := strings.TrimSpace(s.DisplayValue); display != "" {
		if v, err := strconv.Atoi(display); err == nil {
			return &v
		}
	}
	return nil
}
