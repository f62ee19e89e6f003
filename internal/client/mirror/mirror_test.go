package mirror_test

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/rosterra/internal/client/mirror"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/stretchr/testify/require"
)

func newMirror(t *testing.T) *mirror.Mirror {
	t.Helper()

	m, err := mirror.Open(t.Context(), filepath.Join(t.TempDir(), "nested", "mirror.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestSession(t *testing.T) {
	m := newMirror(t)
	ctx := t.Context()

	tok, err := m.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	acc, err := m.Account(ctx)
	require.NoError(t, err)
	require.Nil(t, acc)

	require.NoError(t, m.SaveSession(ctx, "tok-1", rostersdk.User{ID: "u1", Email: "a@b.co", Role: "admin"}))

	tok, err = m.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	acc, err = m.Account(ctx)
	require.NoError(t, err)
	require.Equal(t, "u1", acc.ID)

	require.NoError(t, m.ClearSession(ctx))
	tok, err = m.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.db")

	m, err := mirror.Open(t.Context(), path)
	require.NoError(t, err)
	require.NoError(t, m.Set(t.Context(), "k", []byte("v")))
	require.NoError(t, m.Close())

	m, err = mirror.Open(t.Context(), path)
	require.NoError(t, err)
	defer m.Close()

	v, err := m.Get(t.Context(), "k")
	require.NoError(t, err)
	require.Equal(t, "v", string(v))
}

func TestCollections(t *testing.T) {
	m := newMirror(t)
	ctx := t.Context()

	require.NoError(t, m.Add(ctx, mirror.Profiles,
		rostersdk.Roaster{ID: "a", Name: "A"},
		rostersdk.Roaster{ID: "b", Name: "B"},
	))
	require.NoError(t, m.Add(ctx, mirror.Roasters, rostersdk.Roaster{ID: "x", Name: "X"}))

	list, err := m.List(ctx, mirror.Profiles)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "A", list[0].Name)

	// Put keeps the position of an existing record.
	require.NoError(t, m.Put(ctx, mirror.Profiles, rostersdk.Roaster{ID: "a", Name: "A2"}))
	list, err = m.List(ctx, mirror.Profiles)
	require.NoError(t, err)
	require.Equal(t, []string{"A2", "B"}, []string{list[0].Name, list[1].Name})

	n, err := m.Remove(ctx, mirror.Profiles, "a", "missing")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = m.GetProfile(ctx, mirror.Profiles, "a")
	require.ErrorIs(t, err, mirror.ErrNotFound)

	require.NoError(t, m.Clear(ctx, mirror.Profiles))
	list, err = m.List(ctx, mirror.Profiles)
	require.NoError(t, err)
	require.Empty(t, list)

	// Other collections are untouched.
	list, err = m.List(ctx, mirror.Roasters)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestReplaceKeepsLocalOnly(t *testing.T) {
	m := newMirror(t)
	ctx := t.Context()

	require.NoError(t, m.Add(ctx, mirror.Roasters,
		rostersdk.Roaster{ID: "old", Name: "Old"},
		rostersdk.Roaster{ID: "local", Name: "Local", LocalOnly: true},
	))

	require.NoError(t, m.Replace(ctx, mirror.Roasters, []rostersdk.Roaster{
		{ID: "s1", Name: "S1"},
		{ID: "s2", Name: "S2"},
	}))

	list, err := m.List(ctx, mirror.Roasters)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "s1", list[0].ID)
	require.Equal(t, "s2", list[1].ID)
	require.Equal(t, "local", list[2].ID)
	require.True(t, list[2].LocalOnly)
}
