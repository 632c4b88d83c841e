package api

import "github.com/soaringjerry/klausurarchiv/internal/services"

// Store is everything the services need from the entity store.
type Store interface {
	services.AuthStore
	services.ModerationStore
	services.InsightsStore
	services.UserReader
}

var (
	_ Store                    = (*memoryStore)(nil)
	_ services.AuthStore       = (*memoryStore)(nil)
	_ services.ModerationStore = (*memoryStore)(nil)
	_ services.InsightsStore   = (*memoryStore)(nil)
)
