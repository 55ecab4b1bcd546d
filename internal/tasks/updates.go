package tasks

import "fmt"

// ProgressUpdate represents a progress event during a push.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Preparing Phase = iota
	Habits
	Notes
	Complete
)

func (p Phase) String() string {
	switch p {
	case Preparing:
		return "preparing"
	case Habits:
		return "habits"
	case Notes:
		return "notes"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func preparingUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Preparing,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Checking %d local records against the remote store...", total),
	}
}

func recordPushedUpdate(phase Phase, step, total int, label string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, label),
	}
}

func recordFailedUpdate(phase Phase, step, total int, label string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, label, err),
	}
}

func completeUpdate(result *PushResult) ProgressUpdate {
	return ProgressUpdate{
		Phase: Complete,
		Step:  result.Total(),
		Total: result.Total(),
		Message: fmt.Sprintf("Pushed %d habits and %d notes (%d skipped, %d failed)",
			result.HabitsPushed, result.NotesPushed, result.Skipped, result.Failed),
		Data: result,
	}
}
