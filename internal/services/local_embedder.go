package services

import (
	"context"
	"hash/fnv"
)

// DefaultLocalDimension is the vector size used by the local embedder unless
// configured otherwise.
const DefaultLocalDimension = 256

// localEmbedder is the default, fully offline provider: it hashes character
// trigrams into a fixed-size count vector. Strings that share most of their
// character sequences land close together under cosine similarity, which is
// enough for typo-level matching without any model download or API key. It is
// not a semantic model; deployments that need "ML" to land near "Data Science"
// should configure the gemini or openai provider.
type localEmbedder struct {
	dimension int
}

func NewLocalEmbedder(dimension int) Embedder {
	if dimension <= 0 {
		dimension = DefaultLocalDimension
	}

	return &localEmbedder{dimension: dimension}
}

// EmbedText implements Embedder. It never fails; text with no trigrams yields
// the zero vector, which the matcher scores as 0 similarity.
func (l *localEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	vector := make([]float32, l.dimension)

	runes := []rune(text)
	if len(runes) == 0 {
		return vector, nil
	}

	if len(runes) < 3 {
		vector[l.bucket(string(runes))]++
		return vector, nil
	}

	for i := 0; i+3 <= len(runes); i++ {
		vector[l.bucket(string(runes[i:i+3]))]++
	}

	return vector, nil
}

func (l *localEmbedder) bucket(gram string) int {
	h := fnv.New32a()
	h.Write([]byte(gram))
	return int(h.Sum32() % uint32(l.dimension))
}
