package store

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Snapshotter periodically duplicates every collection file to a .autosave
// shadow copy. Last-known-good snapshotting for crash recovery only, not a
// transaction log.
type Snapshotter struct {
	store       *Store
	collections []string
	interval    time.Duration
}

func NewSnapshotter(store *Store, interval time.Duration) *Snapshotter {
	return &Snapshotter{
		store:       store,
		collections: Collections,
		interval:    interval,
	}
}

// Start blocks until ctx is canceled.
func (s *Snapshotter) Start(ctx context.Context) {
	zap.L().Info("autosave snapshotter started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping snapshotter")
			return
		case <-ticker.C:
			s.Snapshot()
		}
	}
}

// Snapshot copies each collection under its guard so a concurrent Save can't
// produce a torn shadow copy.
func (s *Snapshotter) Snapshot() {
	var g errgroup.Group
	for _, name := range s.collections {
		name := name
		g.Go(func() error {
			return s.store.Update(name, func() error {
				return s.copyShadow(name)
			})
		})
	}
	if err := g.Wait(); err != nil {
		zap.L().Error("autosave snapshot failed", zap.Error(err))
	}
}

func (s *Snapshotter) copyShadow(name string) error {
	path := s.store.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.WriteFile(path+".autosave", data, 0o644)
}
