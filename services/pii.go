package services

import "regexp"

// namePattern is a deliberately crude heuristic: two adjacent capitalized
// words. It over-triggers on ordinary proper nouns, which is acceptable for
// a warning banner.
var namePattern = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)

// PIIWarning is shown alongside the answer when the question appears to name
// an individual.
const PIIWarning = "Please avoid sharing personal information about specific individuals."

// CheckPII reports whether the text looks like it contains a person's name.
func CheckPII(text string) bool {
	return namePattern.MatchString(text)
}
