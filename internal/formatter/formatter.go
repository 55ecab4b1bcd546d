// package formatter renders a user's data as JSON, CSV or Markdown for "Export My Data"
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/mindflow/internal/achievements"
	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
)

// Export formats accepted by [Write].
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// ExportSnapshot is everything the user owns locally, stamped with the export time.
type ExportSnapshot struct {
	ExportedAt   time.Time                    `json:"exportedAt"`
	Habits       []models.Habit               `json:"habits"`
	Notes        []models.Note                `json:"notes"`
	Achievements []models.UnlockedAchievement `json:"achievements"`
	Settings     models.Settings              `json:"settings"`
}

// MarshalJSON encodes v, indented when pretty is set.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteJSON writes the snapshot as indented JSON.
func WriteJSON(w io.Writer, s ExportSnapshot) error {
	data, err := MarshalJSON(s, true)
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// HabitsToCSV converts habits to CSV with columns: ID, Name, Category, Frequency, Streak, Completed Days, Created
func HabitsToCSV(habits []models.Habit) ([]byte, error) {
	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		done := 0
		for _, c := range h.Completions {
			if c.Completed {
				done++
			}
		}
		rows = append(rows, []string{
			h.ID,
			h.Name,
			string(h.Category),
			string(h.Frequency),
			strconv.Itoa(h.Streak),
			strconv.Itoa(done),
			h.CreatedAt.Format(time.RFC3339),
		})
	}
	return encodeCSV([]string{"ID", "Name", "Category", "Frequency", "Streak", "Completed Days", "Created"}, rows)
}

// NotesToCSV converts notes to CSV with columns: ID, Title, Content, Type, Mood, Tags, Stickers, Created, Updated
//
// Tags and stickers are joined with ";". An absent mood is an empty cell.
func NotesToCSV(notes []models.Note) ([]byte, error) {
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		mood := ""
		if n.Mood != nil {
			mood = strconv.Itoa(*n.Mood)
		}
		rows = append(rows, []string{
			n.ID,
			n.Title,
			n.Content,
			string(n.Type),
			mood,
			strings.Join(n.Tags, ";"),
			strings.Join(n.Stickers, ";"),
			n.CreatedAt.Format(time.RFC3339),
			n.UpdatedAt.Format(time.RFC3339),
		})
	}
	return encodeCSV([]string{"ID", "Title", "Content", "Type", "Mood", "Tags", "Stickers", "Created", "Updated"}, rows)
}

func encodeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV record: %w", err)
	}
	return buf.Bytes(), nil
}

// CSVExportResult contains the paths of files created by [WriteCSV]
type CSVExportResult struct {
	HabitsFile string
	NotesFile  string
}

// WriteCSV writes habits.csv and notes.csv into dir, creating it when missing.
func WriteCSV(dir string, s ExportSnapshot) (*CSVExportResult, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	habits, err := HabitsToCSV(s.Habits)
	if err != nil {
		return nil, err
	}
	notes, err := NotesToCSV(s.Notes)
	if err != nil {
		return nil, err
	}

	result := &CSVExportResult{
		HabitsFile: filepath.Join(dir, "habits.csv"),
		NotesFile:  filepath.Join(dir, "notes.csv"),
	}
	if err := os.WriteFile(result.HabitsFile, habits, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	if err := os.WriteFile(result.NotesFile, notes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return result, nil
}

// ExportToMarkdown renders the snapshot as a Markdown journal.
func ExportToMarkdown(s ExportSnapshot) []byte {
	var buf bytes.Buffer

	buf.WriteString("# MindFlow Export\n\n")
	fmt.Fprintf(&buf, "**Exported**: %s\n", s.ExportedAt.Format("January 2, 2006 15:04"))
	fmt.Fprintf(&buf, "**Habits**: %d\n", len(s.Habits))
	fmt.Fprintf(&buf, "**Notes**: %d\n", len(s.Notes))
	fmt.Fprintf(&buf, "**Achievements**: %d\n\n", len(s.Achievements))

	buf.WriteString("## Habits\n\n")
	if len(s.Habits) == 0 {
		buf.WriteString("_No habits yet._\n\n")
	}
	for i, h := range s.Habits {
		fmt.Fprintf(&buf, "%d. **%s** (%s, %s) streak %d\n", i+1, h.Name, h.Category, h.Frequency, h.Streak)
		if h.Description != "" {
			fmt.Fprintf(&buf, "   %s\n", h.Description)
		}
	}
	if len(s.Habits) > 0 {
		buf.WriteString("\n")
	}

	buf.WriteString("## Notes\n\n")
	if len(s.Notes) == 0 {
		buf.WriteString("_No notes yet._\n\n")
	}
	for _, n := range s.Notes {
		title := n.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&buf, "### %s\n\n", title)
		fmt.Fprintf(&buf, "_%s_", n.CreatedAt.Format(shared.DayLayout))
		if n.Mood != nil {
			fmt.Fprintf(&buf, " · mood %d/5", *n.Mood)
		}
		if len(n.Tags) > 0 {
			fmt.Fprintf(&buf, " · #%s", strings.Join(n.Tags, " #"))
		}
		buf.WriteString("\n\n")
		if n.Content != "" {
			buf.WriteString(n.Content + "\n\n")
		}
	}

	if len(s.Achievements) > 0 {
		buf.WriteString("## Achievements\n\n")
		for _, u := range s.Achievements {
			label := u.ID
			if a, ok := achievements.Lookup(u.ID); ok {
				label = a.Icon + " " + a.Title
			}
			fmt.Fprintf(&buf, "- %s (%s)\n", label, u.UnlockedAt.Format(shared.DayLayout))
		}
	}
	return buf.Bytes()
}

// WriteMarkdown writes the Markdown rendering of s to w.
func WriteMarkdown(w io.Writer, s ExportSnapshot) error {
	if _, err := w.Write(ExportToMarkdown(s)); err != nil {
		return fmt.Errorf("failed to write Markdown: %w", err)
	}
	return nil
}

// DefaultPath is the file (or directory, for CSV) an export is written to when none is given.
func DefaultPath(format string, at time.Time) string {
	base := "mindflow-export-" + at.Format(shared.DayLayout)
	switch format {
	case FormatCSV:
		return base
	case FormatMarkdown:
		return base + ".md"
	default:
		return base + ".json"
	}
}

// Write exports s to path in format and returns the files created.
func Write(format, path string, s ExportSnapshot) ([]string, error) {
	if path == "" {
		path = DefaultPath(format, s.ExportedAt)
	}

	switch format {
	case FormatCSV:
		res, err := WriteCSV(path, s)
		if err != nil {
			return nil, err
		}
		return []string{res.HabitsFile, res.NotesFile}, nil
	case FormatJSON, FormatMarkdown:
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()

		if format == FormatJSON {
			err = WriteJSON(f, s)
		} else {
			err = WriteMarkdown(f, s)
		}
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}
