// Package tasks runs long operations that report progress while they work.
//
// # Push
//
// [PushEngine.Push] uploads habits and notes that were created while signed out. It runs in four
// phases: [Preparing] lists remote ids and the local push log, then [Habits] and [Notes] insert the
// missing records, and [Complete] reports the totals.
//
// Inserts share one [rate.Limiter] and run on a bounded [errgroup.Group]. A failed insert is logged,
// counted in [PushResult] and skipped. Successful inserts are recorded in the push log so a rerun
// does not upload them again.
//
// # Progress Reporting
//
// Updates are sent with select and default, so a slow or absent reader never blocks the push.
package tasks
