package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const (
	FavoritesKey = "ka_favorites"
	ThemeKey     = "ka_theme"

	ThemeDark  = "dark"
	ThemeLight = "light"
)

// PreferencesStore is a small key-value backend for profile preferences.
type PreferencesStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// FavoritesService keeps the favorite exam ids and theme flag for the single
// profile. Both values are read once on construction and written through on
// every toggle.
type FavoritesService struct {
	store  PreferencesStore
	logger *zap.Logger

	mu        sync.RWMutex
	favorites []string
	theme     string
}

func NewFavoritesService(ctx context.Context, store PreferencesStore, logger *zap.Logger) (*FavoritesService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &FavoritesService{store: store, logger: logger, favorites: []string{}, theme: ThemeLight}

	raw, ok, err := store.Get(ctx, FavoritesKey)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if ok {
		var ids []string
		if err := json.Unmarshal(raw, &ids); err != nil {
			logger.Warn("Discarding unreadable favorites", zap.Error(err))
		} else if ids != nil {
			s.favorites = ids
		}
	}

	raw, ok, err = store.Get(ctx, ThemeKey)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	if ok && string(raw) == ThemeDark {
		s.theme = ThemeDark
	}
	return s, nil
}

func (s *FavoritesService) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.favorites...)
}

func (s *FavoritesService) IsFavorite(examID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsTag(s.favorites, examID)
}

// ToggleFavorite adds or removes examID and reports whether it is now a favorite.
func (s *FavoritesService) ToggleFavorite(ctx context.Context, examID string) (bool, error) {
	if examID == "" {
		return false, NewInvalidError("exam id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	added := !containsTag(s.favorites, examID)
	next := make([]string, 0, len(s.favorites)+1)
	for _, id := range s.favorites {
		if id != examID {
			next = append(next, id)
		}
	}
	if added {
		next = append(next, examID)
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return false, err
	}
	if err := s.store.Put(ctx, FavoritesKey, raw); err != nil {
		return false, fmt.Errorf("save favorites: %w", err)
	}
	s.favorites = next
	return added, nil
}

func (s *FavoritesService) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *FavoritesService) ToggleTheme(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := ThemeDark
	if s.theme == ThemeDark {
		next = ThemeLight
	}
	if err := s.store.Put(ctx, ThemeKey, []byte(next)); err != nil {
		return s.theme, fmt.Errorf("save theme: %w", err)
	}
	s.theme = next
	return next, nil
}
