package services

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"alfredoptarigan/skill-matcher/internal/config"
)

// Refresher polls a file-backed skill source for modification and swaps a
// freshly built store into the holder. The swap publishes a complete new
// snapshot, so in-flight requests never see a partially updated list.
type Refresher interface {
	Start(ctx context.Context)
	Stop()
}

type refresher struct {
	holder      *StoreHolder
	embedder    Embedder
	index       SkillIndexService
	skillsCfg   config.SkillsConfig
	concurrency int
	lastModTime time.Time
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewRefresher(
	holder *StoreHolder,
	embedder Embedder,
	index SkillIndexService,
	skillsCfg config.SkillsConfig,
	concurrency int,
) Refresher {
	return &refresher{
		holder:      holder,
		embedder:    embedder,
		index:       index,
		skillsCfg:   skillsCfg,
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Refresher.
func (r *refresher) Start(ctx context.Context) {
	if info, err := os.Stat(r.skillsCfg.Source); err == nil {
		r.lastModTime = info.ModTime()
	}

	r.wg.Add(1)
	go r.pollSource(ctx)

	log.Printf("🔄 Skill list refresher started (every %s)\n", r.skillsCfg.RefreshInterval)
}

// Stop implements Refresher.
func (r *refresher) Stop() {
	close(r.stopChan)
	r.wg.Wait()
	log.Println("✅ Skill list refresher stopped")
}

func (r *refresher) pollSource(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.skillsCfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			info, err := os.Stat(r.skillsCfg.Source)
			if err != nil {
				log.Printf("⚠️ Failed to stat skill source: %v\n", err)
				continue
			}

			if !info.ModTime().After(r.lastModTime) {
				continue
			}
			r.lastModTime = info.ModTime()

			if err := r.rebuild(ctx); err != nil {
				log.Printf("❌ Skill list refresh failed: %v\n", err)
			}
		}
	}
}

// rebuild builds a whole new store and publishes it atomically. On any error
// the previous store stays live.
func (r *refresher) rebuild(ctx context.Context) error {
	skills, err := LoadSkills(r.skillsCfg)
	if err != nil {
		return err
	}

	store, err := BuildSkillStore(ctx, skills, r.embedder, r.concurrency)
	if err != nil {
		return err
	}

	r.holder.Swap(store)
	log.Printf("✅ Skill list refreshed (%d skills)\n", len(store.All()))

	if r.index != nil {
		if err := r.index.SyncStore(ctx, store); err != nil {
			log.Printf("⚠️ Failed to resync qdrant index: %v\n", err)
		}
	}

	return nil
}
