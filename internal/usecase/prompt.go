package usecase

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/rhalemsc/ncaam-summarizer/internal/domain/game"
)

// hrefPattern matches an "href" key/value pair inside serialized JSON,
// including a trailing comma when present, so whole pairs can be removed
// from the prompt payload without re-parsing it.
var hrefPattern = regexp.MustCompile(`"href"\s*:\s*"[^"]*"\s*(,)?`)

const promptTemplate = `You are a college basketball coach reviewing film of the %TEAM_NAME% game below.
Using only the structured game data that follows, write a post-game breakdown for the team's supporters.

Structure the write-up as HTML using exactly these <h2> section headings, in this order:
<h2>Game Summary</h2>
<h2>The Good</h2>
<h2>The Bad</h2>
<h2>The Mixed</h2>
<h2>Interesting Stats</h2>
<h2>Key Players</h2>
<h2>Game Notes</h2>

Under each heading write the section body as plain HTML paragraphs. Ground every claim in the data below; do not invent statistics. Write from the perspective of the %TEAM_NAME% coaching staff.

GAME DATA:
%GAME_DATA%`

// sectionBlock serializes one structured section for the prompt. Present
// sections are compacted to a single line; absent ones are represented by
// an explicit missing marker so the model sees the gap rather than
// silently losing the section.
func sectionBlock(buf *bytebufferpool.ByteBuffer, name string, raw json.RawMessage) {
	marker := strings.ToUpper(name)
	if len(raw) == 0 {
		buf.WriteString("\n=== ")
		buf.WriteString(marker)
		buf.WriteString(" (MISSING) ===\n")
		return
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		buf.WriteString("\n=== ")
		buf.WriteString(marker)
		buf.WriteString(" (MISSING) ===\n")
		return
	}

	buf.WriteString("\n=== ")
	buf.WriteString(marker)
	buf.WriteString(" ===\n")
	buf.Write(compact.Bytes())
	buf.WriteString("\n")
}

// BuildPrompt assembles the generation prompt for one game: the fixed
// coach-persona template with the team name substituted and the game's
// structured sections serialized in a stable order, with link fields
// redacted. Identical input always yields an identical prompt.
func BuildPrompt(detail game.Detail, teamName string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, section := range detail.StructuredSections() {
		sectionBlock(buf, section.Name, section.Raw)
	}

	payload := hrefPattern.ReplaceAllString(buf.String(), "")

	prompt := strings.ReplaceAll(promptTemplate, "%TEAM_NAME%", teamName)
	return strings.ReplaceAll(prompt, "%GAME_DATA%", payload)
}
