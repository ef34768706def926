package narrative

// Sections maps a generated section title to its body markup fragment.
// Built fresh per generation call; titles missing from the generator
// output are simply absent.
type Sections map[string]string

// Titles is the fixed set of sections the generator is asked to produce,
// in display order. Splitting does not validate against it; consumers
// render absent titles as empty.
var Titles = []string{
	"Game Summary",
	"The Good",
	"The Bad",
	"The Mixed",
	"Interesting Stats",
	"Key Players",
	"Game Notes",
}
