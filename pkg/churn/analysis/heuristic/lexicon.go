package heuristic

// forms of be, have and do, tagged as verbs by the tagger but acting as
// auxiliaries or copulas
var auxiliaries = map[string]struct{}{
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {}, "am": {},
	"'s": {}, "'re": {}, "'m": {},
	"do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {},
}
