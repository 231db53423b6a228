package services

import (
	"math"
	"regexp"
	"strings"
)

// wordPattern keeps runs of two or more word characters, lowercased. Single
// characters carry no keyword signal for skill names.
var wordPattern = regexp.MustCompile(`\w\w+`)

// Vectorizer is a TF-IDF model fit over the canonical skill list. Fit once at
// store build; Transform is read-only and safe for concurrent use.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// FitVectorizer learns the vocabulary and smoothed inverse document
// frequencies from the given documents: idf = ln((1+n)/(1+df)) + 1.
func FitVectorizer(documents []string) *Vectorizer {
	vocabulary := make(map[string]int)
	df := make(map[string]int)

	for _, doc := range documents {
		seen := make(map[string]bool)
		for _, token := range tokenize(doc) {
			if _, ok := vocabulary[token]; !ok {
				vocabulary[token] = len(vocabulary)
			}
			if !seen[token] {
				seen[token] = true
				df[token]++
			}
		}
	}

	n := float64(len(documents))
	idf := make([]float64, len(vocabulary))
	for token, index := range vocabulary {
		idf[index] = math.Log((1+n)/(1+float64(df[token]))) + 1
	}

	return &Vectorizer{
		vocabulary: vocabulary,
		idf:        idf,
	}
}

// Transform converts text to an L2-normalized TF-IDF vector over the fitted
// vocabulary. Out-of-vocabulary tokens are dropped; text with no known tokens
// yields the zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vector := make([]float64, len(v.vocabulary))

	for _, token := range tokenize(text) {
		if index, ok := v.vocabulary[token]; ok {
			vector[index] += v.idf[index]
		}
	}

	var norm float64
	for _, weight := range vector {
		norm += weight * weight
	}
	if norm == 0 {
		return vector
	}

	norm = math.Sqrt(norm)
	for i := range vector {
		vector[i] /= norm
	}

	return vector
}

// VocabularySize reports the number of distinct terms learned at fit time.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

func tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}
