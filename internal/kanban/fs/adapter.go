package fs

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/kanban/models"
	"taskboard/internal/logs"
	"taskboard/internal/storage"
)

// DefaultKey is the storage key the board document lives under.
const DefaultKey = "todo-board"

// Adapter loads and saves a board document in a key-value store.
type Adapter struct {
	store storage.Store
	key   string
}

func NewAdapter(store storage.Store, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{store: store, key: key}
}

// Load returns the stored board. A missing key or malformed data reports
// found=false with a nil error. A failed read returns the error, since the
// stored board may still be intact.
func (a *Adapter) Load(ctx context.Context) (models.Board, bool, error) {
	data, err := a.store.Get(ctx, a.key)
	if errors.Is(err, storage.ErrNotFound) {
		logs.Logger.Infow("no stored board", "key", a.key)
		return models.Board{}, false, nil
	}
	if err != nil {
		logs.Logger.Warnw("failed to read stored board", "key", a.key, "error", err)
		return models.Board{}, false, fmt.Errorf("read %s: %w", a.key, err)
	}

	board, err := DecodeBoard(data)
	if err != nil {
		logs.Logger.Warnw("discarding stored board", "key", a.key, "error", err)
		return models.Board{}, false, nil
	}

	logs.Logger.Debugw("loaded board", "key", a.key, "columns", len(board.Columns), "tasks", board.TaskCount())
	return board, true, nil
}

// Save writes the whole board under the adapter's key.
func (a *Adapter) Save(ctx context.Context, board models.Board) error {
	data, err := EncodeBoard(board)
	if err != nil {
		return err
	}
	return a.store.Put(ctx, a.key, data)
}
