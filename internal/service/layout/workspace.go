package layout

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/domain/advice"
	"github.com/phrazzld/karuta-api/internal/domain/memorize"
	"github.com/phrazzld/karuta-api/internal/platform/logger"
)

// ErrLayoutHidden is returned when the layout is requested during a test.
var ErrLayoutHidden = errors.New("layout is hidden during a memorization test")

// Workspace is one player's layout state. It is not safe for concurrent use;
// the Manager serializes access to the workspaces it holds.
type Workspace struct {
	id        uuid.UUID
	catalog   *domain.Catalog
	engine    *advice.Engine
	selection *domain.SelectionSet
	session   *memorize.Session
	logger    *slog.Logger
}

// NewWorkspace creates an empty workspace over the catalog.
func NewWorkspace(catalog *domain.Catalog, engine *advice.Engine, logger *slog.Logger) *Workspace {
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

	id := uuid.New()
	return &Workspace{
		id:        id,
		catalog:   catalog,
		engine:    engine,
		selection: domain.NewSelectionSet(catalog),
		session:   memorize.NewSession(),
		logger: logger.With(
			slog.String("component", "layout_workspace"),
			slog.String("session_id", id.String()),
		),
	}
}

// ID returns the workspace identifier.
func (w *Workspace) ID() uuid.UUID { return w.id }

// Dispatch applies one command and returns the recomputed view. A failed
// command leaves the workspace as it was.
func (w *Workspace) Dispatch(ctx context.Context, cmd Command) (View, error) {
	log := logger.FromContextOrDefault(ctx, w.logger).With(slog.String("command", cmd.Name()))

	if err := cmd.apply(w); err != nil {
		log.Debug("command rejected", slog.String("error", err.Error()))
		return View{}, err
	}

	v, err := w.view()
	if err != nil {
		log.Error("failed to compute view", slog.String("error", err.Error()))
		return View{}, err
	}

	log.Debug("command applied",
		slog.Int("selected", v.SelectedCount),
		slog.Int("placed", v.PlacedCount),
		slog.String("mode", string(v.Mode)))
	return v, nil
}

// View returns the current view without changing anything.
func (w *Workspace) View() (View, error) {
	return w.view()
}

// Advice evaluates the current board. Before the board is complete it
// returns a *domain.IncompleteAssignmentError carrying the progress, and
// during a test it returns ErrLayoutHidden.
func (w *Workspace) Advice() (advice.Advice, error) {
	if w.session.Mode() == memorize.ModeTesting {
		return advice.Advice{}, ErrLayoutHidden
	}
	return w.engine.Evaluate(w.boardOrEmpty(), w.catalog)
}

// Layout returns copies of the selection and placement, for saving.
func (w *Workspace) Layout() ([]string, domain.Placement) {
	var placement domain.Placement
	if board := w.selection.Board(); board != nil {
		placement = board.Snapshot()
	}
	return w.selection.IDs(), placement
}

// Score returns the last submitted score of the current test, or nil.
func (w *Workspace) Score() *memorize.Score {
	return w.session.LastResult()
}

// boardOrEmpty returns the board, or an unattached empty board when the
// selection has never been full. The empty board is never complete.
func (w *Workspace) boardOrEmpty() *domain.BoardAssignment {
	if board := w.selection.Board(); board != nil {
		return board
	}
	return domain.NewBoardAssignment(domain.NewSelectionSet(w.catalog))
}

