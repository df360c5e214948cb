package layout

import (
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/domain/memorize"
)

// Command is one user action against a workspace. The set of commands is
// closed; each one is defined in this file.
type Command interface {
	// Name identifies the command in logs.
	Name() string

	apply(w *Workspace) error
}

// AddCard adds a card to the selection.
type AddCard struct {
	CardID string
}

// RemoveCard removes a card from the selection and from the board.
type RemoveCard struct {
	CardID string
}

// ClearSelection empties the selection and discards the board.
type ClearSelection struct{}

// AssignZone replaces the contents of one zone.
type AssignZone struct {
	Zone    domain.Zone
	CardIDs []string
}

// StartMemorize shows the complete layout for study.
type StartMemorize struct{}

// StartTest freezes the layout and starts collecting a recall.
type StartTest struct{}

// SubmitRecall scores a recall against the frozen layout.
type SubmitRecall struct {
	Recall memorize.Recall
}

// CancelSession abandons the memorization session.
type CancelSession struct{}

// LoadLayout replaces the selection and board with a saved layout.
type LoadLayout struct {
	Selected  []string
	Placement domain.Placement
}

func (AddCard) Name() string        { return "add_card" }
func (RemoveCard) Name() string     { return "remove_card" }
func (ClearSelection) Name() string { return "clear_selection" }
func (AssignZone) Name() string     { return "assign_zone" }
func (StartMemorize) Name() string  { return "start_memorize" }
func (StartTest) Name() string      { return "start_test" }
func (SubmitRecall) Name() string   { return "submit_recall" }
func (CancelSession) Name() string  { return "cancel_session" }
func (LoadLayout) Name() string     { return "load_layout" }

func (c AddCard) apply(w *Workspace) error {
	if err := w.selection.Add(c.CardID); err != nil {
		return err
	}
	if w.selection.IsFull() && w.selection.Board() == nil {
		domain.NewBoardAssignment(w.selection)
	}
	w.session.Cancel()
	return nil
}

func (c RemoveCard) apply(w *Workspace) error {
	w.selection.Remove(c.CardID)
	w.session.Cancel()
	return nil
}

func (ClearSelection) apply(w *Workspace) error {
	w.selection.Clear()
	w.session.Cancel()
	return nil
}

func (c AssignZone) apply(w *Workspace) error {
	board := w.selection.Board()
	if board == nil {
		return domain.ErrBoardNotReady
	}
	return board.Assign(c.Zone, c.CardIDs)
}

func (StartMemorize) apply(w *Workspace) error {
	return w.session.StartMemorize(w.boardOrEmpty())
}

func (StartTest) apply(w *Workspace) error {
	return w.session.StartTest(w.boardOrEmpty())
}

func (c SubmitRecall) apply(w *Workspace) error {
	_, err := w.session.Submit(c.Recall)
	return err
}

func (CancelSession) apply(w *Workspace) error {
	w.session.Cancel()
	return nil
}

func (c LoadLayout) apply(w *Workspace) error {
	selection, _, err := domain.RestoreLayout(w.catalog, c.Selected, c.Placement)
	if err != nil {
		return err
	}
	w.selection.Clear()
	w.selection = selection
	w.session.Cancel()
	return nil
}
