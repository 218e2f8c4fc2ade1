package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/stackable/internal/domain"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()

	provider, err := New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Close() })

	return provider
}

// TestProvider_SaveAndListCommitted verifies notes written in a committed
// session are visible to a later session, newest first.
func TestProvider_SaveAndListCommitted(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	sess, err := provider.Begin(ctx)
	require.NoError(t, err)

	sqlSess, ok := sess.(*Session)
	require.True(t, ok)
	assert.NotEmpty(t, sqlSess.ID())

	first := &domain.Note{AuthorID: "u1", Body: "first note"}
	require.NoError(t, SaveNote(ctx, sqlSess, first))
	assert.NotEmpty(t, first.ID, "save must assign an ID")
	assert.False(t, first.CreatedAt.IsZero(), "save must assign a timestamp")

	second := &domain.Note{AuthorID: "u1", Body: "second note"}
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, SaveNote(ctx, sqlSess, second))

	require.NoError(t, sess.Commit())
	require.NoError(t, sess.Close())

	reader, err := provider.Begin(ctx)
	require.NoError(t, err)
	defer reader.Close()

	notes, err := ListNotes(ctx, reader.(*Session), "u1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "second note", notes[0].Body, "newest note first")
	assert.Equal(t, "first note", notes[1].Body)
}

// TestProvider_RollbackDiscardsWrites verifies an uncommitted session leaves
// no trace.
func TestProvider_RollbackDiscardsWrites(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	sess, err := provider.Begin(ctx)
	require.NoError(t, err)

	sqlSess := sess.(*Session)
	require.NoError(t, SaveNote(ctx, sqlSess, &domain.Note{AuthorID: "u2", Body: "doomed"}))
	require.NoError(t, sess.Rollback())

	reader, err := provider.Begin(ctx)
	require.NoError(t, err)
	defer reader.Close()

	notes, err := ListNotes(ctx, reader.(*Session), "u2")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

// TestSession_CloseSettlesByRollback verifies closing an open session
// discards its writes and later settles are no-ops.
func TestSession_CloseSettlesByRollback(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	sess, err := provider.Begin(ctx)
	require.NoError(t, err)

	sqlSess := sess.(*Session)
	require.NoError(t, SaveNote(ctx, sqlSess, &domain.Note{AuthorID: "u3", Body: "gone"}))

	require.NoError(t, sess.Close())
	assert.NoError(t, sess.Commit(), "commit after close is a no-op")
	assert.NoError(t, sess.Close(), "double close is a no-op")

	reader, err := provider.Begin(ctx)
	require.NoError(t, err)
	defer reader.Close()

	notes, err := ListNotes(ctx, reader.(*Session), "u3")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

// TestProvider_HealthCheck verifies the provider reports healthy over an
// open database.
func TestProvider_HealthCheck(t *testing.T) {
	provider := newTestProvider(t)

	assert.Equal(t, "sqlite", provider.Name())
	assert.NoError(t, provider.Check(context.Background()))
}

// TestListNotes_ScopedToAuthor verifies one author never sees another's
// notes.
func TestListNotes_ScopedToAuthor(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	sess, err := provider.Begin(ctx)
	require.NoError(t, err)

	sqlSess := sess.(*Session)
	require.NoError(t, SaveNote(ctx, sqlSess, &domain.Note{AuthorID: "alice", Body: "mine"}))
	require.NoError(t, SaveNote(ctx, sqlSess, &domain.Note{AuthorID: "bob", Body: "not yours"}))

	notes, err := ListNotes(ctx, sqlSess, "alice")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "mine", notes[0].Body)

	require.NoError(t, sess.Rollback())
}
