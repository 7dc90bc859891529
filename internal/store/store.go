package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Collection names. One JSON document per collection, rewritten wholesale.
const (
	UsersCollection        = "users"
	TransactionsCollection = "transactions"
	AdminLogsCollection    = "admin_logs"
	PaymentsCollection     = "payment_submissions"
	GiftCardsCollection    = "giftcard_submissions"
)

// Collections lists every collection the snapshotter shadows.
var Collections = []string{
	UsersCollection,
	TransactionsCollection,
	AdminLogsCollection,
	PaymentsCollection,
	GiftCardsCollection,
}

// Store keeps each collection in <dir>/<name>.json. A mutex per collection
// name serializes read-modify-write cycles; atomicity across collections is
// not provided, a crash between two Save calls leaves the files inconsistent.
type Store struct {
	dir string

	mu     sync.Mutex
	guards map[string]*sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("can't create data dir: %w", err)
	}
	return &Store{
		dir:    dir,
		guards: make(map[string]*sync.Mutex),
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) guard(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guards[name]
	if !ok {
		g = &sync.Mutex{}
		s.guards[name] = g
	}
	return g
}

// Update runs fn while holding the collection guard. All Load/Save calls for
// the collection must happen inside fn; fn must not call Update for the same
// collection again.
func (s *Store) Update(name string, fn func() error) error {
	g := s.guard(name)
	g.Lock()
	defer g.Unlock()
	return fn()
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load reads the collection document into out. A missing or empty file leaves
// out at its default. Malformed content is quarantined to a timestamped side
// file and also leaves out at the default: parse failures never reach the
// caller.
func (s *Store) Load(name string, out any) error {
	path := s.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("can't read collection %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.quarantine(name, path, err)
		return nil
	}
	return nil
}

func (s *Store) quarantine(name, path string, cause error) {
	dst := filepath.Join(s.dir, fmt.Sprintf("%s.corrupt.%d.json", name, time.Now().Unix()))
	if err := os.Rename(path, dst); err != nil {
		zap.L().Error("can't quarantine corrupt collection",
			zap.String("collection", name), zap.Error(err))
		return
	}
	zap.L().Error("collection content corrupt, quarantined and reset to default",
		zap.String("collection", name), zap.String("quarantine", dst), zap.Error(cause))
}

// Save copies the current document to <name>.json.backup, then overwrites the
// whole file. There are no partial writes; the backup holds the pre-write
// document if the overwrite is interrupted.
func (s *Store) Save(name string, v any) error {
	path := s.path(name)
	if prev, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(path+".backup", prev, 0o644); err != nil {
			zap.L().Error("can't write backup copy",
				zap.String("collection", name), zap.Error(err))
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("can't serialize collection %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("can't write collection %s: %w", name, err)
	}
	return nil
}
