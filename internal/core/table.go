package core

import (
	"context"

	"github.com/JonMunkholm/userdir/internal/config"
)

// Row is one table line as rendered.
type Row struct {
	User     User
	Expanded bool
}

// Table tracks which rows are expanded and which user, if any, is waiting
// for delete confirmation. It follows the store: ids that disappear from the
// list are dropped from both.
type Table struct {
	store    *Store
	features config.FeaturesConfig

	expanded    map[string]struct{}
	pending     *User
	unsubscribe func()
}

// NewTable attaches a table controller to store.
func NewTable(store *Store, features config.FeaturesConfig) *Table {
	t := &Table{
		store:    store,
		features: features,
		expanded: make(map[string]struct{}),
	}
	t.unsubscribe = store.Subscribe(t.prune)
	return t
}

// Close detaches the table from the store.
func (t *Table) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

// ToggleExpand flips the expansion of id and reports the new state.
func (t *Table) ToggleExpand(id string) bool {
	if _, ok := t.expanded[id]; ok {
		delete(t.expanded, id)
		return false
	}
	t.expanded[id] = struct{}{}
	return true
}

// IsExpanded reports whether id is expanded.
func (t *Table) IsExpanded(id string) bool {
	_, ok := t.expanded[id]
	return ok
}

// Rows returns the store's users in order with their expansion state.
func (t *Table) Rows() []Row {
	users := t.store.Users()
	rows := make([]Row, len(users))
	for i, u := range users {
		rows[i] = Row{User: u, Expanded: t.IsExpanded(u.ID)}
	}
	return rows
}

// RequestDelete holds user for confirmation.
func (t *Table) RequestDelete(user User) error {
	if !t.features.DeletableUsers {
		return ErrDeleteDisabled
	}
	u := user
	t.pending = &u
	return nil
}

// PendingDelete returns the user awaiting confirmation.
func (t *Table) PendingDelete() (User, bool) {
	if t.pending == nil {
		return User{}, false
	}
	return *t.pending, true
}

// ConfirmDelete deletes the pending user and clears the prompt. Without a
// pending user it does nothing. On a store error the prompt stays up.
func (t *Table) ConfirmDelete(ctx context.Context) error {
	if t.pending == nil {
		return nil
	}
	if err := t.store.Delete(ctx, t.pending.ID); err != nil {
		return err
	}
	t.pending = nil
	return nil
}

// CancelDelete clears the prompt.
func (t *Table) CancelDelete() {
	t.pending = nil
}

// CanEdit and CanDelete tell the view which row actions to offer.
func (t *Table) CanEdit() bool   { return t.features.EditableUsers }
func (t *Table) CanDelete() bool { return t.features.DeletableUsers }

func (t *Table) prune(users []User) {
	present := make(map[string]struct{}, len(users))
	for _, u := range users {
		present[u.ID] = struct{}{}
	}
	for id := range t.expanded {
		if _, ok := present[id]; !ok {
			delete(t.expanded, id)
		}
	}
	if t.pending != nil {
		if _, ok := present[t.pending.ID]; !ok {
			t.pending = nil
		}
	}
}
