// Package repositories implements the local SQLite persistence for MindFlow.
//
// The local store is a key-value table of JSON snapshots, one key per logical collection. Every mutation
// overwrites its key wholesale; reads decode the whole snapshot.
//
// Key Implementations:
//   - [SnapshotRepository] : Raw key-value access (Get/Put/Delete/Keys/Clear)
//   - [Collection] : Typed snapshot of a slice, used for habits, notes and unlocked achievements
//   - [SettingsRepository] : Preferences with defaults, plus the profile image
//   - [PushLogRepository] : Records which local records have been uploaded to the remote store
package repositories
