package memory

import (
	"fmt"
	"slices"

	"github.com/kirinyoku/showtime/internal/repository"
)

// Table is an id -> record map that remembers insertion order and keeps
// optional unique indexes. It does no locking of its own; the Store
// serializes access. Records are cloned on the way in and out so callers
// never share memory with the table.
type Table[T any] struct {
	key    func(T) string
	clone  func(T) T
	rows   map[string]T
	order  []string
	unique map[string]*uniqueIndex[T]
}

type uniqueIndex[T any] struct {
	value func(T) string
	ids   map[string]string
}

func NewTable[T any](key func(T) string, clone func(T) T) *Table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}

	return &Table[T]{
		key:    key,
		clone:  clone,
		rows:   make(map[string]T),
		unique: make(map[string]*uniqueIndex[T]),
	}
}

// Unique registers a unique index. Empty values are not indexed.
func (t *Table[T]) Unique(name string, value func(T) string) *Table[T] {
	t.unique[name] = &uniqueIndex[T]{value: value, ids: make(map[string]string)}
	return t
}

func (t *Table[T]) Get(id string) (T, bool) {
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(v), true
}

// Lookup finds a record through a unique index.
func (t *Table[T]) Lookup(index, value string) (T, bool) {
	var zero T

	idx, ok := t.unique[index]
	if !ok || value == "" {
		return zero, false
	}

	id, ok := idx.ids[value]
	if !ok {
		return zero, false
	}

	return t.Get(id)
}

// Insert adds a new record. It fails with repository.ErrConflict when the
// id or any unique value is already taken.
func (t *Table[T]) Insert(v T) error {
	id := t.key(v)
	if _, exists := t.rows[id]; exists {
		return fmt.Errorf("id %q: %w", id, repository.ErrConflict)
	}

	if err := t.checkUnique(id, v); err != nil {
		return err
	}

	t.rows[id] = t.clone(v)
	t.order = append(t.order, id)
	t.index(id, v)

	return nil
}

// Update replaces an existing record and returns the previous version.
func (t *Table[T]) Update(v T) (T, error) {
	id := t.key(v)

	prev, exists := t.rows[id]
	if !exists {
		var zero T
		return zero, fmt.Errorf("id %q: %w", id, repository.ErrNotFound)
	}

	if err := t.checkUnique(id, v); err != nil {
		var zero T
		return zero, err
	}

	t.unindex(prev)
	t.rows[id] = t.clone(v)
	t.index(id, v)

	return prev, nil
}

func (t *Table[T]) Delete(id string) {
	prev, exists := t.rows[id]
	if !exists {
		return
	}

	t.unindex(prev)
	delete(t.rows, id)
	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
}

func (t *Table[T]) List() []T {
	return t.ListWhere(nil)
}

// ListWhere returns the records matching pred in insertion order. A nil
// pred matches everything.
func (t *Table[T]) ListWhere(pred func(T) bool) []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		v := t.rows[id]
		if pred == nil || pred(v) {
			out = append(out, t.clone(v))
		}
	}
	return out
}

func (t *Table[T]) checkUnique(id string, v T) error {
	for name, idx := range t.unique {
		val := idx.value(v)
		if val == "" {
			continue
		}
		if owner, taken := idx.ids[val]; taken && owner != id {
			return fmt.Errorf("%s %q: %w", name, val, repository.ErrConflict)
		}
	}
	return nil
}

func (t *Table[T]) index(id string, v T) {
	for _, idx := range t.unique {
		if val := idx.value(v); val != "" {
			idx.ids[val] = id
		}
	}
}

func (t *Table[T]) unindex(v T) {
	for _, idx := range t.unique {
		if val := idx.value(v); val != "" {
			delete(idx.ids, val)
		}
	}
}
