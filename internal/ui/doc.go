// Package ui implements the interactive dashboard using bubbletea's Elm architecture.
//
// The [Model] has six tabs selected by number keys or tab/shift+tab:
//  1. Dashboard : today's progress, streaks, mood and recent notes
//  2. Tracker : toggle today's completion for each habit
//  3. Notes : browse and filter notes
//  4. Music : linked Spotify playlists followed by the curated catalog
//  5. Insights : weekly completion chart and category breakdown
//  6. Profile : account, Spotify link state and achievement badges
//
// Messages flow through the Msg union type. Collection changes made outside the TUI reach
// the model through [store.Watch]. When the achievement tracker reports new unlocks the
// celebration overlay takes over the screen until any key is pressed.
package ui
