package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/sgurov/coderoom/internal/core"
)

// Registry is the single owner of the connection -> display name mapping.
// It enforces no uniqueness; duplicate reconciliation is the coordinator's
// job.
type Registry struct {
	mu    sync.RWMutex
	names map[core.ConnID]string
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[core.ConnID]string)}
}

func (r *Registry) SetName(id core.ConnID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[id] = name
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("username", name).Msg("name set")
}

// Name returns the display name for id, or ok=false if the connection was
// never named or has been removed.
func (r *Registry) Name(id core.ConnID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[id]
	return name, ok
}

func (r *Registry) Remove(id core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.names, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("name removed")
}
