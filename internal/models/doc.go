// Package models defines the domain entities for MindFlow.
//
// The package contains three groups of types:
//
// 1. User data, owned by a single account (or by the local profile in local-only mode)
//   - [Habit] : A tracked habit with its per-day [Completion] history and derived streak
//   - [Note] : A journal entry with tags, stickers and an optional mood
//   - [UnlockedAchievement] : Membership record in the append-only unlocked set
//   - [Settings] : Application preferences persisted alongside the collections
//
// 2. Static catalogs, never mutated at runtime
//   - [Achievement] : Definition with a [Requirement] evaluated by the achievements package
//   - [Sticker] : Decorations a note may reference by ID
//   - [Playlist] : Curated music for the music screen
//
// 3. Wire records exchanged with the remote store
//   - [HabitRecord], [NoteRecord] : Row shapes, converted with [HabitFromRecord] / [NoteFromRecord]
//   - [UserProfile], [User], [Session] : Account and linking data
//
// Domain types validate through go-playground/validator struct tags; see [Validate].
package models
