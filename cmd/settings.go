package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/repositories"
	"github.com/desertthunder/mindflow/internal/shared"
	"github.com/urfave/cli/v3"
)

// maxProfileImage bounds images embedded as data URLs.
const maxProfileImage = 5 << 20

// SettingsShow prints every preference grouped by section.
func (r *Runner) SettingsShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.wired(ctx); err != nil {
		return err
	}
	s, err := r.settings.Get()
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(s, cmd.Bool("pretty"))
	}

	sections, err := settingsMap(s)
	if err != nil {
		return err
	}
	for _, name := range sortedKeys(sections) {
		r.writePlain("[%s]\n", name)
		values, _ := sections[name].(map[string]any)
		for _, key := range sortedKeys(values) {
			r.writePlain("  %-24s %v\n", key, values[key])
		}
		r.writePlain("\n")
	}
	if at, err := r.snapshots.UpdatedAt(repositories.KeySettings); err == nil {
		r.writePlain("Last changed %s\n", at.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// SettingsSet changes one preference addressed as section.key.
func (r *Runner) SettingsSet(ctx context.Context, cmd *cli.Command) error {
	key, value := cmd.StringArg("key"), cmd.StringArg("value")
	if key == "" || value == "" {
		return fmt.Errorf("%w: usage: settings set <section.key> <value>", shared.ErrMissingArgument)
	}
	if err := r.wired(ctx); err != nil {
		return err
	}

	current, err := r.settings.Get()
	if err != nil {
		return err
	}
	next, err := applySetting(current, key, value)
	if err != nil {
		return err
	}

	if _, err := r.settings.Update(func(s *models.Settings) { *s = next }); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	r.logger.Info("setting changed", "key", key, "value", value)
	return r.writePlain("✓ %s = %s\n", key, value)
}

// SettingsReset restores the default preferences.
func (r *Runner) SettingsReset(ctx context.Context, cmd *cli.Command) error {
	if err := r.wired(ctx); err != nil {
		return err
	}
	if err := r.settings.Reset(); err != nil {
		return err
	}
	return r.writePlain("✓ Settings restored to defaults\n")
}

// SettingsImage shows, sets or clears the profile image. Local files are stored as data URLs.
func (r *Runner) SettingsImage(ctx context.Context, cmd *cli.Command) error {
	if err := r.wired(ctx); err != nil {
		return err
	}

	switch {
	case cmd.Bool("clear"):
		if err := r.settings.SetProfileImage(""); err != nil {
			return err
		}
		return r.writePlain("✓ Profile image removed\n")

	case cmd.IsSet("set"):
		ref, err := imageRef(cmd.String("set"))
		if err != nil {
			return err
		}
		if err := r.settings.SetProfileImage(ref); err != nil {
			return err
		}
		return r.writePlain("✓ Profile image updated\n")
	}

	ref, err := r.settings.ProfileImage()
	if err != nil {
		return err
	}
	if ref == "" {
		return r.writePlain("No profile image set.\n")
	}
	if strings.HasPrefix(ref, "data:") {
		mime, _, _ := strings.Cut(strings.TrimPrefix(ref, "data:"), ";")
		return r.writePlain("Profile image: embedded %s (%d bytes encoded)\n", mime, len(ref))
	}
	return r.writePlain("Profile image: %s\n", ref)
}

// applySetting returns s with the dotted key set to value, parsed according to the current value's type.
func applySetting(s models.Settings, key, value string) (models.Settings, error) {
	section, field, ok := strings.Cut(key, ".")
	if !ok {
		return s, fmt.Errorf("%w: key must look like section.name, got %q", shared.ErrInvalidArgument, key)
	}

	sections, err := settingsMap(s)
	if err != nil {
		return s, err
	}
	values, ok := sections[section].(map[string]any)
	if !ok {
		return s, fmt.Errorf("%w: unknown section %q (one of %s)", shared.ErrInvalidArgument, section, strings.Join(sortedKeys(sections), ", "))
	}
	existing, ok := values[field]
	if !ok {
		return s, fmt.Errorf("%w: unknown setting %q (one of %s)", shared.ErrInvalidArgument, key, strings.Join(sortedKeys(values), ", "))
	}

	switch existing.(type) {
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("%w: %s expects true or false", shared.ErrInvalidArgument, key)
		}
		values[field] = b
	case float64:
		n, err := strconv.Atoi(value)
		if err != nil {
			return s, fmt.Errorf("%w: %s expects a number", shared.ErrInvalidArgument, key)
		}
		values[field] = n
	default:
		values[field] = value
	}

	raw, err := json.Marshal(sections)
	if err != nil {
		return s, err
	}
	var out models.Settings
	if err := json.Unmarshal(raw, &out); err != nil {
		return s, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	return out, nil
}

func settingsMap(s models.Settings) (map[string]any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// imageRef turns a file path into a data URL and passes http(s) and data URLs through.
func imageRef(ref string) (string, error) {
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "data") {
		return ref, nil
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	if len(data) > maxProfileImage {
		return "", fmt.Errorf("%w: image larger than %d MB", shared.ErrInvalidArgument, maxProfileImage>>20)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: %s is not an image (%s)", shared.ErrInvalidArgument, ref, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
