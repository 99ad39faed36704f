package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/doodle-diary/internal/domain"
	"github.com/pkordes/doodle-diary/internal/repo"
	"github.com/pkordes/doodle-diary/internal/service"
)

// ---- mock repo -------------------------------------------------------------

// mockHistoryRepo is a hand-written test double for repo.HistoryRepo.
// By default it remembers the last saved sequence and loads it back.
type mockHistoryRepo struct {
	load func(ctx context.Context) ([]domain.DoodleEntry, error)
	save func(ctx context.Context, entries []domain.DoodleEntry) error

	saved     []domain.DoodleEntry
	saveCalls int
}

func (m *mockHistoryRepo) Load(ctx context.Context) ([]domain.DoodleEntry, error) {
	if m.load != nil {
		return m.load(ctx)
	}
	return m.saved, nil
}

func (m *mockHistoryRepo) Save(ctx context.Context, entries []domain.DoodleEntry) error {
	m.saveCalls++
	if m.save != nil {
		return m.save(ctx, entries)
	}
	m.saved = entries
	return nil
}

// compile-time check: mockHistoryRepo must satisfy repo.HistoryRepo.
var _ repo.HistoryRepo = (*mockHistoryRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func testEntry(transcript string) domain.DoodleEntry {
	return domain.DoodleEntry{
		ID:         uuid.New(),
		Date:       "August 23, 2026",
		Transcript: transcript,
		ImageURL:   domain.EncodePNGDataURI([]byte{0x89, 'P', 'N', 'G'}),
		Prompt:     "a doodle of " + transcript,
		Style:      domain.DefaultStyle(),
	}
}

func newStore(t *testing.T, r repo.HistoryRepo) *service.HistoryStore {
	t.Helper()
	store, err := service.NewHistoryStore(context.Background(), r)
	require.NoError(t, err)
	return store
}

// ---- Add -------------------------------------------------------------------

// TestHistoryStore_Add_PrependsNewestFirst verifies the insertion invariant:
// repeated adds of e1, e2, e3 yield order [e3, e2, e1].
func TestHistoryStore_Add_PrependsNewestFirst(t *testing.T) {
	store := newStore(t, &mockHistoryRepo{})
	ctx := context.Background()

	e1, e2, e3 := testEntry("one"), testEntry("two"), testEntry("three")
	require.NoError(t, store.Add(ctx, e1))
	require.NoError(t, store.Add(ctx, e2))
	require.NoError(t, store.Add(ctx, e3))

	assert.Equal(t, []domain.DoodleEntry{e3, e2, e1}, store.Entries())
}

// TestHistoryStore_Add_PersistsFullSequence verifies every mutation persists
// the whole updated sequence, not a delta.
func TestHistoryStore_Add_PersistsFullSequence(t *testing.T) {
	mock := &mockHistoryRepo{}
	store := newStore(t, mock)
	ctx := context.Background()

	e1, e2 := testEntry("one"), testEntry("two")
	require.NoError(t, store.Add(ctx, e1))
	require.NoError(t, store.Add(ctx, e2))

	assert.Equal(t, 2, mock.saveCalls)
	assert.Equal(t, []domain.DoodleEntry{e2, e1}, mock.saved)
}

// TestHistoryStore_Add_RollsBackOnSaveFailure verifies memory and storage
// never diverge: a failed persist leaves the in-memory sequence unchanged.
func TestHistoryStore_Add_RollsBackOnSaveFailure(t *testing.T) {
	mock := &mockHistoryRepo{
		save: func(context.Context, []domain.DoodleEntry) error {
			return errors.New("disk full")
		},
	}
	store := newStore(t, mock)

	err := store.Add(context.Background(), testEntry("doomed"))

	require.Error(t, err)
	assert.Empty(t, store.Entries())
}

// ---- Remove ----------------------------------------------------------------

// TestHistoryStore_Remove_KeepsRelativeOrder verifies removal shrinks the
// history by one and leaves the remaining entries' order untouched.
func TestHistoryStore_Remove_KeepsRelativeOrder(t *testing.T) {
	store := newStore(t, &mockHistoryRepo{})
	ctx := context.Background()

	e1, e2, e3 := testEntry("one"), testEntry("two"), testEntry("three")
	require.NoError(t, store.Add(ctx, e1))
	require.NoError(t, store.Add(ctx, e2))
	require.NoError(t, store.Add(ctx, e3))

	require.NoError(t, store.Remove(ctx, e2.ID))

	assert.Equal(t, []domain.DoodleEntry{e3, e1}, store.Entries())
}

// TestHistoryStore_Remove_AbsentIDIsSilentNoOp verifies removing an unknown
// id neither errors nor persists anything.
func TestHistoryStore_Remove_AbsentIDIsSilentNoOp(t *testing.T) {
	mock := &mockHistoryRepo{}
	store := newStore(t, mock)
	ctx := context.Background()

	e1 := testEntry("one")
	require.NoError(t, store.Add(ctx, e1))
	savesBefore := mock.saveCalls

	require.NoError(t, store.Remove(ctx, uuid.New()))

	assert.Equal(t, []domain.DoodleEntry{e1}, store.Entries())
	assert.Equal(t, savesBefore, mock.saveCalls, "no persist for a no-op removal")
}

// ---- Load ------------------------------------------------------------------

// TestHistoryStore_LoadsPersistedStateAtConstruction verifies the store
// starts from whatever the repo holds.
func TestHistoryStore_LoadsPersistedStateAtConstruction(t *testing.T) {
	persisted := []domain.DoodleEntry{testEntry("old"), testEntry("older")}
	store := newStore(t, &mockHistoryRepo{saved: persisted})

	assert.Equal(t, persisted, store.Entries())
	assert.Equal(t, 2, store.Len())
}

// TestHistoryStore_LoadFailurePropagates verifies real storage failures (not
// corruption, which the repo swallows) surface at construction.
func TestHistoryStore_LoadFailurePropagates(t *testing.T) {
	mock := &mockHistoryRepo{
		load: func(context.Context) ([]domain.DoodleEntry, error) {
			return nil, errors.New("database is locked")
		},
	}

	_, err := service.NewHistoryStore(context.Background(), mock)

	assert.Error(t, err)
}

// ---- Get / Entries ---------------------------------------------------------

// TestHistoryStore_Get verifies lookup by id and the not-found sentinel.
func TestHistoryStore_Get(t *testing.T) {
	store := newStore(t, &mockHistoryRepo{})
	e1 := testEntry("one")
	require.NoError(t, store.Add(context.Background(), e1))

	got, err := store.Get(e1.ID)
	require.NoError(t, err)
	assert.Equal(t, e1, got)

	_, err = store.Get(uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestHistoryStore_Entries_ReturnsCopy verifies mutating the returned slice
// does not affect the store.
func TestHistoryStore_Entries_ReturnsCopy(t *testing.T) {
	store := newStore(t, &mockHistoryRepo{})
	e1 := testEntry("one")
	require.NoError(t, store.Add(context.Background(), e1))

	snapshot := store.Entries()
	snapshot[0].Transcript = "tampered"

	assert.Equal(t, "one", store.Entries()[0].Transcript)
}
