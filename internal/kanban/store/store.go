// Package store owns the live board for a session. Every mutation swaps in a
// new board snapshot, notifies subscribers, and persists the result.
package store

import (
	"context"
	"time"

	"taskboard/internal/kanban/ids"
	"taskboard/internal/kanban/models"
	"taskboard/internal/kanban/operations"
	"taskboard/internal/logs"
)

// Persister writes a board snapshot to durable storage.
type Persister interface {
	Save(ctx context.Context, board models.Board) error
}

// Loader reads the stored board. found is false when nothing usable is stored;
// err is set when the storage itself could not be read.
type Loader interface {
	Load(ctx context.Context) (board models.Board, found bool, err error)
}

// Transform is a whole-board state transition. It reports whether anything changed.
type Transform = func(models.Board) (models.Board, bool)

// Listener is called with the new board after every applied change.
type Listener func(models.Board)

type Store struct {
	board     models.Board
	ids       ids.Source
	now       func() time.Time
	persister Persister
	saveErr   error

	listeners map[int]Listener
	nextSub   int
}

type Option func(*Store)

// WithIDs sets the identifier source used for new columns and tasks.
func WithIDs(source ids.Source) Option {
	return func(s *Store) { s.ids = source }
}

// WithClock sets the time source used for task timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithPersister sets where the board is saved after every change.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// New creates a store around an existing board.
func New(board models.Board, opts ...Option) *Store {
	s := &Store{
		board:     board,
		ids:       ids.UUIDSource{},
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.board.Columns == nil {
		s.board.Columns = []models.Column{}
	}
	return s
}

// Open loads the stored board or, when none is stored, creates the seed board
// and saves it right away so its IDs are stable across sessions. When the
// storage could not be read the seed is kept in memory only.
func Open(ctx context.Context, loader Loader, opts ...Option) *Store {
	s := New(models.Board{}, opts...)

	board, found, err := loader.Load(ctx)
	if found {
		s.board = board
		return s
	}

	s.board = operations.SeedBoard(s.ids, s.stamp())
	if err != nil {
		logs.Logger.Warnw("starting with unsaved seed board", "error", err)
		return s
	}
	logs.Logger.Infow("starting with seed board", "columns", len(s.board.Columns))
	s.persist(ctx, "seed")
	return s
}

// Board returns a copy of the current board.
func (s *Store) Board() models.Board {
	return s.board.Clone()
}

// Subscribe registers fn for change notifications and returns a function that
// removes it again.
func (s *Store) Subscribe(fn Listener) func() {
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// Apply runs a whole-board transform. Results that break the board's ID
// invariants are rejected and leave the board untouched.
func (s *Store) Apply(name string, fn Transform) bool {
	next, changed := fn(s.board)
	if !changed {
		logs.Logger.Debugw("board unchanged", "op", name)
		return false
	}
	if err := operations.CheckInvariants(next); err != nil {
		logs.Logger.Errorw("rejected board transition", "op", name, "error", err)
		return false
	}

	s.board = next
	logs.Logger.Debugw("board changed", "op", name, "columns", len(next.Columns), "tasks", next.TaskCount())

	s.persist(context.Background(), name)
	for _, fn := range s.listeners {
		fn(s.board)
	}
	return true
}

// Replace swaps in a whole new board, for imports and resets.
func (s *Store) Replace(board models.Board) error {
	if err := operations.CheckInvariants(board); err != nil {
		return err
	}
	if board.Columns == nil {
		board.Columns = []models.Column{}
	}
	s.Apply("replace", func(models.Board) (models.Board, bool) {
		return board, true
	})
	return nil
}

// AddColumn appends a column and returns its ID.
func (s *Store) AddColumn(title string) (string, bool) {
	id := s.ids.NewID()
	ok := s.Apply("add-column", func(b models.Board) (models.Board, bool) {
		return operations.AddColumn(b, id, title)
	})
	if !ok {
		return "", false
	}
	return id, true
}

func (s *Store) DeleteColumn(columnID string) bool {
	return s.Apply("delete-column", func(b models.Board) (models.Board, bool) {
		return operations.DeleteColumn(b, columnID)
	})
}

func (s *Store) RenameColumn(columnID, newTitle string) bool {
	return s.Apply("rename-column", func(b models.Board) (models.Board, bool) {
		return operations.RenameColumn(b, columnID, newTitle)
	})
}

// AddTask appends a task to the end of a column and returns its ID.
func (s *Store) AddTask(columnID, text string) (string, bool) {
	id := s.ids.NewID()
	now := s.stamp()
	ok := s.Apply("add-task", func(b models.Board) (models.Board, bool) {
		return operations.AddTask(b, columnID, id, text, now)
	})
	if !ok {
		return "", false
	}
	return id, true
}

func (s *Store) EditTask(columnID, taskID, newText string) bool {
	now := s.stamp()
	return s.Apply("edit-task", func(b models.Board) (models.Board, bool) {
		return operations.EditTask(b, columnID, taskID, newText, now)
	})
}

func (s *Store) ToggleComplete(columnID, taskID string) bool {
	now := s.stamp()
	return s.Apply("toggle-complete", func(b models.Board) (models.Board, bool) {
		return operations.ToggleComplete(b, columnID, taskID, now)
	})
}

func (s *Store) DeleteTask(columnID, taskID string) bool {
	return s.Apply("delete-task", func(b models.Board) (models.Board, bool) {
		return operations.DeleteTask(b, columnID, taskID)
	})
}

// MoveTask moves a task within or across columns. A nil targetIndex appends.
func (s *Store) MoveTask(sourceColumnID, targetColumnID, taskID string, targetIndex *int) bool {
	now := s.stamp()
	return s.Apply("move-task", func(b models.Board) (models.Board, bool) {
		return operations.MoveTask(b, sourceColumnID, targetColumnID, taskID, targetIndex, now)
	})
}

func (s *Store) MoveColumn(sourceIndex, targetIndex int) bool {
	return s.Apply("move-column", func(b models.Board) (models.Board, bool) {
		return operations.MoveColumn(b, sourceIndex, targetIndex)
	})
}

// Now returns the timestamp the store would stamp on a mutation right now.
func (s *Store) Now() time.Time {
	return s.stamp()
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

func (s *Store) persist(ctx context.Context, op string) {
	if s.persister == nil {
		return
	}
	s.saveErr = s.persister.Save(ctx, s.board)
	if s.saveErr != nil {
		logs.Logger.Warnw("failed to save board", "op", op, "error", s.saveErr)
	}
}

// SaveError returns the error from the most recent save, or nil when it
// succeeded. The in-memory board stays current either way.
func (s *Store) SaveError() error {
	return s.saveErr
}
