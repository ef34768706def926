package roster

// Team is one selectable entry from the upstream team list, keyed by the
// provider's team id.
type Team struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Season is one selectable season from the upstream season list.
type Season struct {
	Year        int    `json:"year"`
	DisplayName string `json:"displayName"`
}
