// Package achievements evaluates the static achievement catalog against a user's habits and notes.
//
// [Evaluate] and [ProgressFor] are pure: given the same collections and instant they always return the same
// [Progress]. [NewlyUnlocked] diffs a progress map against the persisted unlocked set. [Tracker] wraps both
// with persistence and a pending celebration that the UI shows once and then dismisses.
//
// The unlocked set is append-only. An achievement is never re-locked, even if later deletions would drop its
// progress below the threshold.
package achievements
