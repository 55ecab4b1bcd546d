package repositories

import (
	"fmt"

	"github.com/desertthunder/mindflow/internal/models"
)

// SettingsRepository reads and writes preferences and the profile image.
type SettingsRepository struct {
	snaps *SnapshotRepository
}

// NewSettingsRepository creates a new [SettingsRepository]
func NewSettingsRepository(snaps *SnapshotRepository) *SettingsRepository {
	return &SettingsRepository{snaps: snaps}
}

// Get returns the stored settings, starting from [models.DefaultSettings] so keys added later keep their defaults.
func (r *SettingsRepository) Get() (models.Settings, error) {
	s := models.DefaultSettings()
	if _, err := r.snaps.Get(KeySettings, &s); err != nil {
		return models.DefaultSettings(), err
	}
	return s, nil
}

// Update applies fn to the current settings, validates and saves the result.
func (r *SettingsRepository) Update(fn func(*models.Settings)) (models.Settings, error) {
	s, err := r.Get()
	if err != nil {
		return s, err
	}

	fn(&s)
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("validation failed: %w", err)
	}
	if err := r.snaps.Put(KeySettings, s); err != nil {
		return s, err
	}
	return s, nil
}

// Reset restores the defaults.
func (r *SettingsRepository) Reset() error {
	return r.snaps.Put(KeySettings, models.DefaultSettings())
}

// ProfileImage returns the stored image reference, or "" when none is set.
func (r *SettingsRepository) ProfileImage() (string, error) {
	var img *string
	if _, err := r.snaps.Get(KeyProfileImage, &img); err != nil {
		return "", err
	}
	if img == nil {
		return "", nil
	}
	return *img, nil
}

// SetProfileImage stores an image reference (a data URL or file path). An empty value clears it.
func (r *SettingsRepository) SetProfileImage(ref string) error {
	if ref == "" {
		return r.snaps.Put(KeyProfileImage, nil)
	}
	return r.snaps.Put(KeyProfileImage, ref)
}
