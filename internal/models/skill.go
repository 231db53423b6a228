package models

// Skill is a canonical skill entry together with its precomputed
// representations. The embedding vector is produced once at store build time
// from the lowercased name; the keyword vector is the TF-IDF transform of the
// name over the vocabulary fit on the full canonical list. Both are read-only
// after the store is built.
type Skill struct {
	Name            string
	EmbeddingVector []float32
	KeywordVector   []float64
}
