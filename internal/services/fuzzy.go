package services

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// FuzzyScore computes the partial-ratio string similarity between the user
// text and a candidate, case-insensitively, scaled from [0,100] to [0,1] and
// rounded to 3 decimals. Partial ratio rewards one string being a
// near-substring of the other, so "databse" still scores high against
// "Relational Database".
func FuzzyScore(userText, candidate string) float64 {
	userText = strings.ToLower(strings.TrimSpace(userText))
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	if userText == "" || candidate == "" {
		return 0
	}

	ratio := fuzzy.PartialRatio(userText, candidate)
	return round3(float64(ratio) / 100)
}
