package service

import (
	"slices"
)

// collection is a session-scoped list of records that is persisted only on
// explicit save or backup. Callers hold Session.mu.
type collection[T any] struct {
	store ListStore[T]
	items []T
	path  string
	id    func(T) string
	clone func(T) T
}

func newCollection[T any](store ListStore[T], id func(T) string, clone func(T) T) *collection[T] {
	return &collection[T]{store: store, items: []T{}, id: id, clone: clone}
}

func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[i] = c.clone(item)
	}
	return out
}

func (c *collection[T]) find(id string) (T, bool) {
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.clone(c.items[i]), true
}

func (c *collection[T]) index(id string) int {
	return slices.IndexFunc(c.items, func(item T) bool { return c.id(item) == id })
}

// open replaces the list with the file contents and remembers path.
func (c *collection[T]) open(path string) error {
	loaded, err := c.store.Load(path)
	if err != nil {
		return err
	}
	c.items = loaded
	c.path = path
	return nil
}

func (c *collection[T]) save() error {
	if c.path == "" {
		return ErrNoPath
	}
	return c.store.Save(c.path, c.items)
}

func (c *collection[T]) saveAs(path string) error {
	if err := c.store.Save(path, c.items); err != nil {
		return err
	}
	c.path = path
	return nil
}

func (c *collection[T]) backup(path string) error {
	return c.store.Save(path, c.items)
}

// put appends item when originalID is empty and otherwise replaces the
// record currently stored under originalID.
func (c *collection[T]) put(originalID string, item T) error {
	id := c.id(item)
	for _, existing := range c.items {
		if c.id(existing) == id && (originalID == "" || c.id(existing) != originalID) {
			return ErrDuplicateID
		}
	}
	item = c.clone(item)
	if originalID == "" {
		c.items = append(c.items, item)
		return nil
	}
	i := c.index(originalID)
	if i < 0 {
		return ErrNotFound
	}
	c.items[i] = item
	return nil
}

func (c *collection[T]) remove(ids []string) int {
	drop := toSet(ids)
	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(item T) bool { return drop[c.id(item)] })
	return before - len(c.items)
}
