package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prefsStubStore struct {
	values  map[string][]byte
	puts    int
	failPut bool
}

func newPrefsStub() *prefsStubStore { return &prefsStubStore{values: map[string][]byte{}} }

func (p *prefsStubStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := p.values[key]
	return v, ok, nil
}

func (p *prefsStubStore) Put(ctx context.Context, key string, value []byte) error {
	if p.failPut {
		return errors.New("disk full")
	}
	p.puts++
	p.values[key] = append([]byte(nil), value...)
	return nil
}

func TestFavoritesToggleWritesThrough(t *testing.T) {
	ctx := context.Background()
	store := newPrefsStub()
	svc, err := NewFavoritesService(ctx, store, nil)
	require.NoError(t, err)
	assert.Empty(t, svc.Favorites())

	added, err := svc.ToggleFavorite(ctx, "1")
	require.NoError(t, err)
	assert.True(t, added)
	added, err = svc.ToggleFavorite(ctx, "7")
	require.NoError(t, err)
	assert.True(t, added)
	assert.JSONEq(t, `["1","7"]`, string(store.values[FavoritesKey]))

	added, err = svc.ToggleFavorite(ctx, "1")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"7"}, svc.Favorites())
	assert.True(t, svc.IsFavorite("7"))
	assert.Equal(t, 3, store.puts)
}

func TestFavoritesLoadedOnce(t *testing.T) {
	ctx := context.Background()
	store := newPrefsStub()
	store.values[FavoritesKey] = []byte(`["3","4"]`)
	store.values[ThemeKey] = []byte("dark")

	svc, err := NewFavoritesService(ctx, store, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, svc.Favorites())
	assert.Equal(t, ThemeDark, svc.Theme())

	store.values[FavoritesKey] = []byte(`[]`)
	assert.Equal(t, []string{"3", "4"}, svc.Favorites())
}

func TestFavoritesUnreadableValueStartsEmpty(t *testing.T) {
	store := newPrefsStub()
	store.values[FavoritesKey] = []byte(`{not json`)
	store.values[ThemeKey] = []byte("sepia")
	svc, err := NewFavoritesService(context.Background(), store, nil)
	require.NoError(t, err)
	assert.Empty(t, svc.Favorites())
	assert.Equal(t, ThemeLight, svc.Theme())
}

func TestThemeToggle(t *testing.T) {
	ctx := context.Background()
	store := newPrefsStub()
	svc, err := NewFavoritesService(ctx, store, nil)
	require.NoError(t, err)

	theme, err := svc.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
	assert.Equal(t, "dark", string(store.values[ThemeKey]))

	theme, err = svc.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)
	assert.Equal(t, "light", string(store.values[ThemeKey]))
}

func TestFavoritesFailedWriteKeepsState(t *testing.T) {
	ctx := context.Background()
	store := newPrefsStub()
	svc, err := NewFavoritesService(ctx, store, nil)
	require.NoError(t, err)
	store.failPut = true

	_, err = svc.ToggleFavorite(ctx, "1")
	assert.Error(t, err)
	assert.Empty(t, svc.Favorites())

	_, err = svc.ToggleTheme(ctx)
	assert.Error(t, err)
	assert.Equal(t, ThemeLight, svc.Theme())

	_, err = svc.ToggleFavorite(ctx, "")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrorInvalid, se.Code)
}
