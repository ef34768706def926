package usecase

import "testing"

func TestSplitSections_BreaksHTMLByHeading(t *testing.T) {
	t.Parallel()

	html := "<h2>Game Summary</h2><p>A tight one.</p>\n<h2>The Good</h2><p>Defense held.</p>\n<h2>Game Notes</h2><p>Next up: road trip.</p>"

	got := SplitSections(html)
	if len(got) != 3 {
		t.Fatalf("unexpected section count: got=%d want=3", len(got))
	}
	if got["Game Summary"] != "<p>A tight one.</p>" {
		t.Fatalf("unexpected summary body: %q", got["Game Summary"])
	}
	if got["The Good"] != "<p>Defense held.</p>" {
		t.Fatalf("unexpected body: %q", got["The Good"])
	}
	if got["Game Notes"] != "<p>Next up: road trip.</p>" {
		t.Fatalf("unexpected final body: %q", got["Game Notes"])
	}
}

func TestSplitSections_DiscardsTextBeforeFirstHeading(t *testing.T) {
	t.Parallel()

	html := "Here is your breakdown:\n<h2>Game Summary</h2><p>Body.</p>"

	got := SplitSections(html)
	if len(got) != 1 {
		t.Fatalf("unexpected section count: got=%d want=1", len(got))
	}
	if got["Game Summary"] != "<p>Body.</p>" {
		t.Fatalf("unexpected body: %q", got["Game Summary"])
	}
}

func TestSplitSections_DuplicateHeadingLastWins(t *testing.T) {
	t.Parallel()

	html := "<h2>The Good</h2><p>First take.</p><h2>The Bad</h2><p>Turnovers.</p><h2>The Good</h2><p>Second take.</p>"

	got := SplitSections(html)
	if len(got) != 2 {
		t.Fatalf("unexpected section count: got=%d want=2", len(got))
	}
	if got["The Good"] != "<p>Second take.</p>" {
		t.Fatalf("duplicate heading should keep the last body, got %q", got["The Good"])
	}
}

func TestSplitSections_TrimsTitlesAndBodies(t *testing.T) {
	t.Parallel()

	html := "<h2>  Key Players  </h2>\n\n  <p>Guard play.</p>  \n"

	got := SplitSections(html)
	if got["Key Players"] != "<p>Guard play.</p>" {
		t.Fatalf("expected trimmed title and body, got %#v", got)
	}
}

func TestSplitSections_EmptyInput(t *testing.T) {
	t.Parallel()

	got := SplitSections("")
	if len(got) != 0 {
		t.Fatalf("expected no sections, got %#v", got)
	}
}

func TestSplitSections_HeadingWithoutBody(t *testing.T) {
	t.Parallel()

	got := SplitSections("<h2>Game Notes</h2>")
	body, ok := got["Game Notes"]
	if !ok {
		t.Fatalf("heading without body should still produce a section")
	}
	if body != "" {
		t.Fatalf("expected empty body, got %q", body)
	}
}
