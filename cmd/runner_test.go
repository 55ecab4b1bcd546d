package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/mindflow/internal/achievements"
	"github.com/desertthunder/mindflow/internal/auth"
	"github.com/desertthunder/mindflow/internal/formatter"
	"github.com/desertthunder/mindflow/internal/insights"
	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
	tu "github.com/desertthunder/mindflow/internal/testing"
	"github.com/zalando/go-keyring"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

// harness runs commands the way main does, one runner per invocation, against a shared local store.
type harness struct {
	t      *testing.T
	config *shared.Config
	dir    string
	out    bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	keyring.MockInit()

	dir := t.TempDir()
	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(dir, "mindflow.db")
	config.Remote.URL = ""
	config.Credentials.Spotify.ClientID = ""
	config.Credentials.Spotify.ClientSecret = ""
	config.Log.File = filepath.Join(dir, "mindflow.log")

	return &harness{t: t, config: config, dir: dir}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	h.out.Reset()

	r := NewRunner(RunnerOpts{
		Config:      h.config,
		ConfigPath:  filepath.Join(h.dir, "config.toml"),
		Logger:      shared.NewLogger(io.Discard),
		Output:      &h.out,
		Clock:       shared.FixedClock{T: testNow},
		Tokens:      auth.NewKeyringStore("test"),
		Interactive: func() bool { return false },
	})
	err := newApp(r).Run(context.Background(), append([]string{"mindflow"}, args...))
	return h.out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("%v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

func (h *harness) habits() []models.Habit {
	h.t.Helper()
	var habits []models.Habit
	if err := json.Unmarshal([]byte(h.mustRun("habit", "list", "--json")), &habits); err != nil {
		h.t.Fatalf("failed to decode habits: %v", err)
	}
	return habits
}

func (h *harness) notes() []models.Note {
	h.t.Helper()
	var notes []models.Note
	if err := json.Unmarshal([]byte(h.mustRun("note", "list", "--json")), &notes); err != nil {
		h.t.Fatalf("failed to decode notes: %v", err)
	}
	return notes
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			clock := shared.FixedClock{T: testNow}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
				Clock:  clock,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.clock != clock {
				t.Error("expected clock to be set")
			}
			if !runner.configured {
				t.Error("expected an explicit config to skip loading")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.configured {
				t.Error("expected default config to be loaded on first command")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})

		t.Run("stores are opened lazily", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.db != nil || runner.habits != nil {
				t.Error("expected no store before the first command")
			}
		})

		t.Run("with DB wires collections immediately", func(t *testing.T) {
			keyring.MockInit()
			db, err := shared.NewDatabase(":memory:")
			if err != nil {
				t.Fatalf("failed to create database: %v", err)
			}
			if err := shared.RunMigrations(db); err != nil {
				t.Fatalf("failed to run migrations: %v", err)
			}

			runner := NewRunner(RunnerOpts{DB: db, Tokens: auth.NewKeyringStore("test"), Output: io.Discard})
			defer runner.Close()

			if runner.habits == nil || runner.notes == nil || runner.tracker == nil {
				t.Fatal("expected collections and tracker to be wired")
			}
			if runner.auth.Configured() {
				t.Error("expected auth to be unconfigured without a remote store")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if result := output.String(); result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result := output.String(); result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
				continue
			}
			if names[cmd.Name] {
				t.Errorf("duplicate command %q", cmd.Name)
			}
			names[cmd.Name] = true
		}
	})
}

func TestResolveID(t *testing.T) {
	habits := []models.Habit{{ID: "abc123"}, {ID: "abd456"}, {ID: "xyz789"}}

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{"full id", "xyz789", "xyz789", nil},
		{"unique prefix", "abc", "abc123", nil},
		{"ambiguous prefix", "ab", "", shared.ErrInvalidArgument},
		{"unknown", "nope", "", shared.ErrNotFound},
		{"empty", "", "", shared.ErrMissingArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveID(habits, tt.ref, "habit")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestApplySetting(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		check   func(models.Settings) bool
		wantErr bool
	}{
		{"string", "appearance.fontSize", "large", func(s models.Settings) bool { return s.Appearance.FontSize == "large" }, false},
		{"bool", "appearance.darkMode", "true", func(s models.Settings) bool { return s.Appearance.DarkMode }, false},
		{"number", "notes.defaultMood", "5", func(s models.Settings) bool { return s.Notes.DefaultMood == 5 }, false},
		{"bad bool", "appearance.darkMode", "maybe", nil, true},
		{"bad number", "notes.defaultMood", "five", nil, true},
		{"unknown section", "theme.color", "red", nil, true},
		{"unknown key", "appearance.theme", "red", nil, true},
		{"no section", "fontSize", "large", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applySetting(models.DefaultSettings(), tt.key, tt.value)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(got) {
				t.Errorf("setting not applied: %+v", got)
			}
		})
	}
}

func TestSetupCommands(t *testing.T) {
	h := newHarness(t)

	t.Run("init creates config and store", func(t *testing.T) {
		out := h.mustRun("setup", "init")
		if !strings.Contains(out, "Config created") {
			t.Errorf("unexpected output %q", out)
		}
		tu.AssertFileExists(t, filepath.Join(h.dir, "config.toml"))
		tu.AssertFileExists(t, h.config.Database.Path)
		if !strings.Contains(out, "Running local-only") {
			t.Error("expected local-only hint")
		}

		saved, err := shared.LoadConfig(filepath.Join(h.dir, "config.toml"))
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if saved.Auth.JWTSecret == shared.PlaceholderJWTSecret {
			t.Error("expected a generated jwt secret")
		}
	})

	t.Run("init keeps existing config", func(t *testing.T) {
		if out := h.mustRun("setup", "init"); !strings.Contains(out, "Config found") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("init updates config from flags", func(t *testing.T) {
		out := h.mustRun("setup", "init", "--db", h.config.Database.Path)
		if !strings.Contains(out, "Config updated") {
			t.Errorf("unexpected output %q", out)
		}

		saved, err := shared.LoadConfig(filepath.Join(h.dir, "config.toml"))
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if saved.Database.Path != h.config.Database.Path {
			t.Errorf("expected saved db path %q, got %q", h.config.Database.Path, saved.Database.Path)
		}
	})

	t.Run("migrate lists applied migrations", func(t *testing.T) {
		out := h.mustRun("setup", "migrate")
		if !strings.Contains(out, "✓ 000") || !strings.Contains(out, "✓ 001") {
			t.Errorf("expected applied migrations, got %q", out)
		}
		if !strings.Contains(out, "skipped remote migrations") {
			t.Error("expected remote to be skipped")
		}
	})

	t.Run("rollback reverts the latest migration", func(t *testing.T) {
		out := h.mustRun("setup", "rollback")
		if !strings.Contains(out, "Rolled back 001 create_push_log") {
			t.Errorf("unexpected output %q", out)
		}
		if out := h.mustRun("setup", "migrate"); !strings.Contains(out, "✓ 001") {
			t.Errorf("expected migrate to reapply, got %q", out)
		}
	})

	t.Run("reset requires confirmation outside a terminal", func(t *testing.T) {
		h.mustRun("habit", "add", "--name", "Walk")

		if _, err := h.run("setup", "reset"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Fatalf("expected ErrMissingArgument, got %v", err)
		}
		if len(h.habits()) != 1 {
			t.Fatal("expected data to survive an unconfirmed reset")
		}

		h.mustRun("setup", "reset", "--yes")
		if len(h.habits()) != 0 {
			t.Error("expected habits to be cleared")
		}
		if out := h.mustRun("achievements", "list", "--unlocked", "--json"); strings.Contains(out, "first_habit") {
			t.Error("expected unlocked achievements to be cleared")
		}
	})
}

func TestHabitCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("habit", "add", "--name", "Meditate", "--category", "mental", "--description", "Ten minutes")
	if !strings.Contains(out, "Created habit Meditate") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "Achievement unlocked: 🎯 First Steps") {
		t.Errorf("expected first habit celebration, got %q", out)
	}

	habits := h.habits()
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	id := habits[0].ID

	t.Run("celebration is shown once", func(t *testing.T) {
		if out := h.mustRun("habit", "list"); strings.Contains(out, "Achievement unlocked") {
			t.Errorf("unexpected repeat celebration %q", out)
		}
	})

	t.Run("add rejects invalid input", func(t *testing.T) {
		if _, err := h.run("habit", "add", "--name", "Run", "--category", "athletic"); err == nil {
			t.Error("expected invalid category to fail")
		}
		if _, err := h.run("habit", "add"); err == nil {
			t.Error("expected missing name to fail")
		}
		if got := len(h.habits()); got != 1 {
			t.Errorf("expected rejected habits not to be stored, got %d", got)
		}
	})

	t.Run("toggle today by prefix", func(t *testing.T) {
		out := h.mustRun("habit", "toggle", id[:8])
		if !strings.Contains(out, "Meditate completed for 2025-01-15 (streak 1)") {
			t.Errorf("unexpected output %q", out)
		}
		if out := h.mustRun("habit", "list"); !strings.Contains(out, "1/1 completed today") {
			t.Errorf("unexpected list %q", out)
		}
	})

	t.Run("toggle past date", func(t *testing.T) {
		h.mustRun("habit", "toggle", id, "--date", "2025-01-14")
		got := h.habits()[0]
		if !got.CompletedOn("2025-01-14") || got.Streak != 2 {
			t.Errorf("expected streak 2 with yesterday completed, got %+v", got)
		}
	})

	t.Run("toggle twice unmarks", func(t *testing.T) {
		out := h.mustRun("habit", "toggle", id, "--date", "2025-01-14")
		if !strings.Contains(out, "unmarked") {
			t.Errorf("unexpected output %q", out)
		}
		if got := h.habits()[0]; got.Streak != 1 {
			t.Errorf("expected streak 1, got %d", got.Streak)
		}
	})

	t.Run("toggle rejects bad date", func(t *testing.T) {
		if _, err := h.run("habit", "toggle", id, "--date", "15/01/2025"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("toggle unknown id", func(t *testing.T) {
		if _, err := h.run("habit", "toggle", "zzzz"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("edit only changes set flags", func(t *testing.T) {
		h.mustRun("habit", "edit", id, "--category", "spiritual")
		got := h.habits()[0]
		if got.Category != models.CategorySpiritual {
			t.Errorf("expected spiritual, got %s", got.Category)
		}
		if got.Name != "Meditate" || got.Description != "Ten minutes" {
			t.Errorf("unexpected changes %+v", got)
		}

		if _, err := h.run("habit", "edit", id); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		out := h.mustRun("habit", "delete", id)
		if !strings.Contains(out, "Deleted habit Meditate") {
			t.Errorf("unexpected output %q", out)
		}
		if out := h.mustRun("habit", "list"); !strings.Contains(out, "No habits yet") {
			t.Errorf("unexpected list %q", out)
		}
	})
}

func TestNoteCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("note", "add", "--title", "Morning", "--content", "Felt rested",
		"--tag", "gratitude", "--tag", "sleep", "--sticker", "sun", "--mood", "5")
	if !strings.Contains(out, "Saved note Morning") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "Thoughtful Beginning") {
		t.Errorf("expected first note celebration, got %q", out)
	}

	notes := h.notes()
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	n := notes[0]
	if n.Mood == nil || *n.Mood != 5 || len(n.Tags) != 2 || n.Stickers[0] != "sun" {
		t.Errorf("unexpected note %+v", n)
	}

	t.Run("list filters by tag", func(t *testing.T) {
		out := h.mustRun("note", "list", "--tag", "sleep")
		if !strings.Contains(out, "Morning") || !strings.Contains(out, "😁") {
			t.Errorf("unexpected output %q", out)
		}
		if out := h.mustRun("note", "list", "--tag", "work"); !strings.Contains(out, "No notes found") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("add rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name string
			args []string
		}{
			{"empty", []string{"note", "add"}},
			{"mood out of range", []string{"note", "add", "--title", "x", "--mood", "9"}},
			{"unknown sticker", []string{"note", "add", "--title", "x", "--sticker", "dragon"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := h.run(tt.args...); err == nil {
					t.Error("expected an error")
				}
			})
		}
		if got := len(h.notes()); got != 1 {
			t.Errorf("expected rejected notes not to be stored, got %d", got)
		}
	})

	t.Run("edit clears mood and replaces tags", func(t *testing.T) {
		h.mustRun("note", "edit", n.ID, "--clear-mood", "--tag", "rest")
		got := h.notes()[0]
		if got.Mood != nil {
			t.Errorf("expected mood cleared, got %d", *got.Mood)
		}
		if len(got.Tags) != 1 || got.Tags[0] != "rest" {
			t.Errorf("unexpected tags %v", got.Tags)
		}
		if got.Title != "Morning" || got.Content != "Felt rested" {
			t.Errorf("unexpected changes %+v", got)
		}
	})

	t.Run("delete", func(t *testing.T) {
		h.mustRun("note", "delete", n.ID[:6])
		if len(h.notes()) != 0 {
			t.Error("expected note to be deleted")
		}
	})
}

func TestAchievementsAndInsights(t *testing.T) {
	h := newHarness(t)
	h.mustRun("habit", "add", "--name", "Walk", "--category", "physical")
	h.mustRun("note", "add", "--content", "Quiet day", "--mood", "4")

	t.Run("list shows progress", func(t *testing.T) {
		out := h.mustRun("achievements", "list")
		if !strings.Contains(out, "🎯 First Steps") {
			t.Errorf("expected unlocked badge, got %q", out)
		}
		if !strings.Contains(out, "🔒 Habit Builder") || !strings.Contains(out, "1/3") {
			t.Errorf("expected locked badge with progress, got %q", out)
		}
		if want := fmt.Sprintf("2/%d unlocked", len(achievements.Catalog())); !strings.Contains(out, want) {
			t.Errorf("unexpected unlocked count in %q", out)
		}
	})

	t.Run("unlocked json", func(t *testing.T) {
		var rows []achievementRow
		if err := json.Unmarshal([]byte(h.mustRun("achievements", "list", "--unlocked", "--json")), &rows); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if len(rows) != 2 || !rows[0].Unlocked {
			t.Errorf("unexpected rows %+v", rows)
		}
	})

	t.Run("check reports nothing new", func(t *testing.T) {
		if out := h.mustRun("achievements", "check"); !strings.Contains(out, "No new achievements") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("insights", func(t *testing.T) {
		var s insights.Insights
		if err := json.Unmarshal([]byte(h.mustRun("insights", "--json")), &s); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if s.TotalHabits != 1 || s.TotalNotes != 1 || s.AvgMood != 4 {
			t.Errorf("unexpected insights %+v", s)
		}
		if len(s.Weekly) != 7 {
			t.Errorf("expected 7 days, got %d", len(s.Weekly))
		}

		out := h.mustRun("insights")
		if !strings.Contains(out, "Average mood:    4.0 Good") || !strings.Contains(out, "physical") {
			t.Errorf("unexpected output %q", out)
		}
	})
}

func TestCatalogCommands(t *testing.T) {
	h := newHarness(t)

	t.Run("stickers by category", func(t *testing.T) {
		out := h.mustRun("stickers", "--category", "food")
		if !strings.Contains(out, "🍕") || strings.Contains(out, "🐱") {
			t.Errorf("unexpected output %q", out)
		}
		if out := h.mustRun("stickers", "--category", "space"); !strings.Contains(out, "No stickers") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("curated playlists", func(t *testing.T) {
		out := h.mustRun("spotify", "curated", "--category", "focus")
		if !strings.Contains(out, "Focus Flow") || strings.Contains(out, "Sleep Sounds") {
			t.Errorf("unexpected output %q", out)
		}
	})
}

func TestSettingsCommands(t *testing.T) {
	h := newHarness(t)

	t.Run("set and show", func(t *testing.T) {
		h.mustRun("settings", "set", "appearance.fontSize", "large")

		var s models.Settings
		if err := json.Unmarshal([]byte(h.mustRun("settings", "show", "--json")), &s); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if s.Appearance.FontSize != "large" {
			t.Errorf("expected large, got %s", s.Appearance.FontSize)
		}
		if out := h.mustRun("settings", "show"); !strings.Contains(out, "[appearance]") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("set rejects invalid values", func(t *testing.T) {
		tests := [][]string{
			{"settings", "set", "appearance.fontSize", "huge"},
			{"settings", "set", "notes.defaultMood", "9"},
			{"settings", "set", "privacy.analytics", "maybe"},
			{"settings", "set", "appearance.fontSize"},
		}
		for _, args := range tests {
			if _, err := h.run(args...); err == nil {
				t.Errorf("%v: expected an error", args)
			}
		}
	})

	t.Run("celebrations can be disabled", func(t *testing.T) {
		h.mustRun("settings", "set", "notifications.achievementCelebrations", "false")
		if out := h.mustRun("habit", "add", "--name", "Read"); strings.Contains(out, "Achievement unlocked") {
			t.Errorf("expected no celebration, got %q", out)
		}
	})

	t.Run("reset", func(t *testing.T) {
		h.mustRun("settings", "reset")
		var s models.Settings
		json.Unmarshal([]byte(h.mustRun("settings", "show", "--json")), &s)
		if s != models.DefaultSettings() {
			t.Errorf("expected defaults, got %+v", s)
		}
	})

	t.Run("profile image", func(t *testing.T) {
		png := filepath.Join(h.dir, "me.png")
		if err := os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644); err != nil {
			t.Fatal(err)
		}

		h.mustRun("settings", "image", "--set", png)
		if out := h.mustRun("settings", "image"); !strings.Contains(out, "embedded image/png") {
			t.Errorf("unexpected output %q", out)
		}

		h.mustRun("settings", "image", "--set", "https://example.com/me.jpg")
		if out := h.mustRun("settings", "image"); !strings.Contains(out, "https://example.com/me.jpg") {
			t.Errorf("unexpected output %q", out)
		}

		if _, err := h.run("settings", "image", "--set", filepath.Join(h.dir, "missing.png")); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}

		h.mustRun("settings", "image", "--clear")
		if out := h.mustRun("settings", "image"); !strings.Contains(out, "No profile image") {
			t.Errorf("unexpected output %q", out)
		}
	})
}

func TestExportCommand(t *testing.T) {
	h := newHarness(t)
	h.mustRun("habit", "add", "--name", "Stretch")
	h.mustRun("note", "add", "--title", "Evening", "--content", "Calm")

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(h.dir, "export.json")
		out := h.mustRun("export", "--format", "json", "--output", path)
		if !strings.Contains(out, "Exported 1 habits, 1 notes and 2 achievements") {
			t.Errorf("unexpected output %q", out)
		}

		var snap formatter.ExportSnapshot
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, path)), &snap); err != nil {
			t.Fatalf("failed to decode export: %v", err)
		}
		if len(snap.Habits) != 1 || len(snap.Notes) != 1 || len(snap.Achievements) != 2 {
			t.Errorf("unexpected snapshot %+v", snap)
		}
		if !snap.ExportedAt.Equal(testNow) {
			t.Errorf("expected export time %v, got %v", testNow, snap.ExportedAt)
		}
	})

	t.Run("csv", func(t *testing.T) {
		dir := filepath.Join(h.dir, "csv")
		h.mustRun("export", "-f", "csv", "-o", dir)
		tu.AssertFileExists(t, filepath.Join(dir, "habits.csv"))
		tu.AssertFileExists(t, filepath.Join(dir, "notes.csv"))
	})

	t.Run("format defaults to setting", func(t *testing.T) {
		h.mustRun("settings", "set", "data.exportFormat", "markdown")
		path := filepath.Join(h.dir, "export.md")
		h.mustRun("export", "-o", path)
		if !strings.HasPrefix(tu.MustReadFile(t, path), "# MindFlow Export") {
			t.Error("expected a markdown export")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := h.run("export", "-f", "xml"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestLocalOnlyCommands(t *testing.T) {
	h := newHarness(t)

	if out := h.mustRun("auth", "status"); !strings.Contains(out, "Not configured") {
		t.Errorf("unexpected output %q", out)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"signin", []string{"auth", "signin", "--email", "a@b.co", "--password", "secret"}},
		{"signup", []string{"auth", "signup", "--email", "a@b.co", "--password", "secret"}},
		{"signout", []string{"auth", "signout"}},
		{"rename", []string{"auth", "rename", "--name", "Ada"}},
		{"push", []string{"push"}},
		{"spotify connect", []string{"spotify", "connect"}},
		{"spotify playlists", []string{"spotify", "playlists"}},
		{"spotify disconnect", []string{"spotify", "disconnect"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := h.run(tt.args...); !errors.Is(err, shared.ErrRemoteUnavailable) {
				t.Errorf("expected ErrRemoteUnavailable, got %v", err)
			}
		})
	}
}
