package layout

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/domain/advice"
	"github.com/phrazzld/karuta-api/internal/platform/logger"
)

// ErrSessionNotFound is returned for an unknown or dropped workspace ID.
var ErrSessionNotFound = errors.New("session not found")

// entry guards one workspace. Commands to the same workspace run one at a
// time; different workspaces do not block each other.
type entry struct {
	mu sync.Mutex
	ws *Workspace
}

// Manager creates, finds and drops workspaces by ID.
type Manager struct {
	catalog *domain.Catalog
	engine  *advice.Engine
	logger  *slog.Logger

	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
}

// NewManager creates a manager whose workspaces share the catalog and engine.
func NewManager(catalog *domain.Catalog, engine *advice.Engine, logger *slog.Logger) *Manager {
	if catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalog cannot be nil")
	}
	if engine == nil {
		engine = advice.NewDefaultEngine()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		catalog: catalog,
		engine:  engine,
		logger:  logger,
		entries: make(map[uuid.UUID]*entry),
	}
}

// Catalog returns the catalog shared by every workspace.
func (m *Manager) Catalog() *domain.Catalog { return m.catalog }

// Create starts a new empty workspace and returns its initial view.
func (m *Manager) Create(ctx context.Context) (View, error) {
	ws := NewWorkspace(m.catalog, m.engine, m.logger)
	v, err := ws.View()
	if err != nil {
		return View{}, err
	}

	m.mu.Lock()
	m.entries[ws.ID()] = &entry{ws: ws}
	count := len(m.entries)
	m.mu.Unlock()

	logger.FromContextOrDefault(ctx, m.logger).Info("session created",
		slog.String("session_id", ws.ID().String()),
		slog.Int("active_sessions", count))
	return v, nil
}

// Dispatch sends a command to the workspace with the given ID.
func (m *Manager) Dispatch(ctx context.Context, id uuid.UUID, cmd Command) (View, error) {
	var v View
	err := m.Do(id, func(ws *Workspace) error {
		var err error
		v, err = ws.Dispatch(ctx, cmd)
		return err
	})
	return v, err
}

// View returns the current view of a workspace.
func (m *Manager) View(id uuid.UUID) (View, error) {
	var v View
	err := m.Do(id, func(ws *Workspace) error {
		var err error
		v, err = ws.View()
		return err
	})
	return v, err
}

// Do runs fn with exclusive access to a workspace. fn must not keep the
// workspace after it returns.
func (m *Manager) Do(id uuid.UUID, fn func(ws *Workspace) error) error {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ws == nil {
		return ErrSessionNotFound
	}
	return fn(e.ws)
}

// Drop discards a workspace. Returns ErrSessionNotFound if it does not exist.
func (m *Manager) Drop(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	e, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	// Commands already holding the entry finish first; later ones see nil.
	e.mu.Lock()
	e.ws = nil
	e.mu.Unlock()

	logger.FromContextOrDefault(ctx, m.logger).Info("session dropped",
		slog.String("session_id", id.String()))
	return nil
}

// Len returns the number of live workspaces.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
