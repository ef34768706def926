package schedule

import "fmt"

const (
	ResultWin  = "Win"
	ResultLoss = "Loss"
)

// Entry is one completed game from the subject team's perspective.
// Entries exist only for games whose upstream status marks play finished;
// future or in-progress games are never represented.
type Entry struct {
	GameID        string `json:"gameId"`
	Date          string `json:"date"`
	OpponentName  string `json:"opponentName,omitempty"`
	Result        string `json:"result"`
	SubjectScore  int    `json:"subjectScore"`
	OpponentScore int    `json:"opponentScore"`
	ScoreLabel    string `json:"scoreLabel"`
}

// DisplayLabel renders the selection-UI label. It is display-only and
// feeds no further computation.
func (e Entry) DisplayLabel() string {
	badge := "🔴 Loss"
	if e.Result == ResultWin {
		badge = "🟢 Win"
	}
	return fmt.Sprintf("%s • %s • %s • %s", e.Date, e.OpponentName, e.ScoreLabel, badge)
}

// FormatScoreLabel renders the subject-first score pair with an en dash,
// matching the selection label format.
func FormatScoreLabel(subject, opponent int) string {
	return fmt.Sprintf("%d–%d", subject, opponent)
}
