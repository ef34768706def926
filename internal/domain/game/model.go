package game

import "encoding/json"

// Detail is the full per-game document from the upstream summary endpoint.
// The six structured sections feed prompt construction; the editorial
// fields are carried only so they can be stripped before serialization.
// A Detail has no identity beyond the game id that fetched it and is
// discarded after one generation request.
type Detail struct {
	Header   json.RawMessage `json:"header,omitempty"`
	Boxscore json.RawMessage `json:"boxscore,omitempty"`
	Leaders  json.RawMessage `json:"leaders,omitempty"`
	GameInfo json.RawMessage `json:"gameInfo,omitempty"`
	Plays    json.RawMessage `json:"plays,omitempty"`
	Scoring  json.RawMessage `json:"scoring,omitempty"`

	Article json.RawMessage `json:"article,omitempty"`
	News    json.RawMessage `json:"news,omitempty"`
	Videos  json.RawMessage `json:"videos,omitempty"`
}

// Section pairs a structured section with its prompt marker name.
type Section struct {
	Name string
	Raw  json.RawMessage
}

// StripEditorial drops the narrative fields so that only structured stats
// ever reach the generator.
func (d *Detail) StripEditorial() {
	d.Article = nil
	d.News = nil
	d.Videos = nil
}

// StructuredSections returns the six structured sections in the fixed
// serialization order. Absent sections are returned with a nil Raw.
func (d Detail) StructuredSections() []Section {
	return []Section{
		{Name: "header", Raw: d.Header},
		{Name: "boxscore", Raw: d.Boxscore},
		{Name: "leaders", Raw: d.Leaders},
		{Name: "gameInfo", Raw: d.GameInfo},
		{Name: "plays", Raw: d.Plays},
		{Name: "scoring", Raw: d.Scoring},
	}
}
