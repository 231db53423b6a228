package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"alfredoptarigan/skill-matcher/internal/models"
)

// ErrEmptySkillList is returned when the canonical skill list is empty at
// build time. This is fatal at startup: no request can be served without
// candidates.
var ErrEmptySkillList = errors.New("canonical skill list is empty")

// SkillStore owns the canonical skill list and its precomputed
// representations. It is immutable after BuildSkillStore returns and is shared
// lock-free by all concurrent requests.
type SkillStore struct {
	skills     []models.Skill
	vectorizer *Vectorizer
}

// BuildSkillStore fits the TF-IDF model over the given names and embeds each
// lowercased name through the embedder. Embedding runs on a bounded pool;
// results keep list order. Duplicate names are skipped so every candidate is
// identified by a unique string.
func BuildSkillStore(ctx context.Context, names []string, embedder Embedder, concurrency int) (*SkillStore, error) {
	unique := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			log.Printf("⚠️ Duplicate skill %q skipped\n", name)
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}

	if len(unique) == 0 {
		return nil, ErrEmptySkillList
	}

	if concurrency < 1 {
		concurrency = 1
	}
	pool, err := ants.NewPool(concurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding pool: %w", err)
	}
	defer pool.Release()

	vectors := make([][]float32, len(unique))
	errs := make([]error, len(unique))
	var wg sync.WaitGroup

	for i, name := range unique {
		i, name := i, name
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			vectors[i], errs[i] = embedder.EmbedText(ctx, strings.ToLower(name))
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("failed to submit embedding task: %w", err)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to embed skill %q: %w", unique[i], err)
		}
	}

	vectorizer := FitVectorizer(unique)

	skills := make([]models.Skill, len(unique))
	for i, name := range unique {
		skills[i] = models.Skill{
			Name:            name,
			EmbeddingVector: vectors[i],
			KeywordVector:   vectorizer.Transform(name),
		}
	}

	return &SkillStore{
		skills:     skills,
		vectorizer: vectorizer,
	}, nil
}

// All returns the canonical skills in load order. Callers must not mutate the
// returned slice.
func (s *SkillStore) All() []models.Skill {
	return s.skills
}

// Names returns the canonical skill names in load order.
func (s *SkillStore) Names() []string {
	names := make([]string, len(s.skills))
	for i, skill := range s.skills {
		names[i] = skill.Name
	}
	return names
}

// Vectorizer exposes the TF-IDF model fit over the canonical list.
func (s *SkillStore) Vectorizer() *Vectorizer {
	return s.vectorizer
}

// StoreHolder publishes the current store behind an atomic pointer. Refreshes
// swap in a whole new store so in-flight requests always observe one
// consistent snapshot.
type StoreHolder struct {
	current atomic.Pointer[SkillStore]
}

func NewStoreHolder(store *SkillStore) *StoreHolder {
	holder := &StoreHolder{}
	holder.current.Store(store)
	return holder
}

func (h *StoreHolder) Current() *SkillStore {
	return h.current.Load()
}

func (h *StoreHolder) Swap(store *SkillStore) {
	h.current.Store(store)
}
