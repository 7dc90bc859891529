package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhalinin/payactiv/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLoadMissingReturnsDefault(t *testing.T) {
	s := newTestStore(t)

	users := make(map[string]domain.User)
	err := s.Load(UsersCollection, &users)
	assert.NoError(t, err)
	assert.Empty(t, users)

	txs := make([]domain.Transaction, 0)
	err = s.Load(TransactionsCollection, &txs)
	assert.NoError(t, err)
	assert.Empty(t, txs)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	saved := map[string]domain.User{
		"1001": {ID: "1001", Name: "Alice", Email: "alice@example.com", Balance: 500, Role: domain.RoleUser},
		"1002": {ID: "1002", Name: "Bob", Email: "bob@example.com", Role: domain.RoleAdmin, Activated: true},
	}
	require.NoError(t, s.Save(UsersCollection, saved))

	loaded := make(map[string]domain.User)
	require.NoError(t, s.Load(UsersCollection, &loaded))
	assert.Equal(t, saved, loaded)
}

func TestSaveWritesBackupFirst(t *testing.T) {
	s := newTestStore(t)

	first := []domain.Transaction{{Type: domain.TxAdminCredit, Amount: 100}}
	require.NoError(t, s.Save(TransactionsCollection, first))

	second := []domain.Transaction{{Type: domain.TxAdminCredit, Amount: 100}, {Type: domain.TxAdminDebit, Amount: 40}}
	require.NoError(t, s.Save(TransactionsCollection, second))

	// The backup must hold the pre-write document.
	backup := make([]domain.Transaction, 0)
	data, err := os.ReadFile(filepath.Join(s.Dir(), TransactionsCollection+".json.backup"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &backup))
	assert.Equal(t, first, backup)

	current := make([]domain.Transaction, 0)
	require.NoError(t, s.Load(TransactionsCollection, &current))
	assert.Equal(t, second, current)
}

func TestLoadCorruptQuarantinesAndDefaults(t *testing.T) {
	s := newTestStore(t)

	path := filepath.Join(s.Dir(), UsersCollection+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	users := make(map[string]domain.User)
	err := s.Load(UsersCollection, &users)
	assert.NoError(t, err)
	assert.Empty(t, users)

	// The broken content must survive as a side artifact and the original
	// file must be gone.
	matches, err := filepath.Glob(filepath.Join(s.Dir(), UsersCollection+".corrupt.*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	quarantined, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(quarantined))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestUpdateSerializesSameCollection(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(AdminLogsCollection, []domain.AdminLogEntry{}))

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(AdminLogsCollection, func() error {
				entries := make([]domain.AdminLogEntry, 0)
				if err := s.Load(AdminLogsCollection, &entries); err != nil {
					return err
				}
				entries = append(entries, domain.AdminLogEntry{Action: "test"})
				return s.Save(AdminLogsCollection, entries)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	entries := make([]domain.AdminLogEntry, 0)
	require.NoError(t, s.Load(AdminLogsCollection, &entries))
	assert.Len(t, entries, writers)
}

func TestSnapshotterCopiesShadow(t *testing.T) {
	s := newTestStore(t)
	users := map[string]domain.User{"1001": {ID: "1001", Name: "Alice"}}
	require.NoError(t, s.Save(UsersCollection, users))

	snap := NewSnapshotter(s, 0)
	snap.Snapshot()

	original, err := os.ReadFile(filepath.Join(s.Dir(), UsersCollection+".json"))
	require.NoError(t, err)
	shadow, err := os.ReadFile(filepath.Join(s.Dir(), UsersCollection+".json.autosave"))
	require.NoError(t, err)
	assert.Equal(t, original, shadow)
}
