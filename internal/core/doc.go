// Package core holds the user directory's state and rules, independent of
// any transport. The web package renders it; tests drive it directly.
//
// # Components
//
//   - [Store]: the canonical user list, persisted as one JSON array under
//     the "users" key of a storage.KV. Mutations are whole-list writes.
//   - [Validator]: pure field rules and the case-insensitive email
//     uniqueness check.
//   - [FormSession]: the add/edit form. Per-field input functions, the
//     state to city dependency and Submit, which validates and commits.
//   - [Table]: expanded rows and the delete confirmation prompt.
//
// # Wiring
//
// There is no package-level state. Build the pieces once and pass them
// around:
//
//	store := core.NewStore(kv, logger)
//	store.Load(ctx)
//	v, _ := core.NewValidator(cfg.Validation, cfg.Messages, ref)
//	form := core.NewFormSession(store, v, ref, cfg.Features, cfg.Validation.PinMaxLength)
//	table := core.NewTable(store, cfg.Features)
//
// FormSession and Table are not safe for concurrent use. The caller
// serializes events, one at a time, the way a UI event loop would.
//
// # Error Handling
//
// Validation problems are data ([ErrorMap]), not errors. Storage read
// problems degrade to an empty list. Storage write problems roll back and
// surface as [ErrStorage]; [MapError] turns any error into a coded
// [UserMessage].
package core
