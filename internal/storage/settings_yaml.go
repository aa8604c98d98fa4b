package storage

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/platform"
	"pomodoro/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkSecs  int    `yaml:"workSecs"`
	BreakSecs int    `yaml:"breakSecs"`
	Geom      string `yaml:"geom"`
}

// Store persists Settings in a YAML file keyed by organization and
// application name.
type Store struct {
	path string
}

// NewStore resolves the settings file under the user config directory.
func NewStore(organization, application string) (*Store, error) {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStoreAt(filepath.Join(configDir, organization, application, settingsFileName)), nil
}

// NewStoreAt uses an explicit settings file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file location.
func (store *Store) Path() string {
	return store.path
}

// Load reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func (store *Store) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// Save writes user preferences to YAML.
func (store *Store) Save(settings preferences.Settings) error {
	if err := ensureDir(filepath.Dir(store.path)); err != nil {
		return err
	}

	fileData := yamlSettings{
		WorkSecs:  int(settings.WorkDuration / time.Second),
		BreakSecs: int(settings.BreakDuration / time.Second),
	}
	if geom, err := settings.Geometry.MarshalText(); err == nil {
		fileData.Geom = string(geom)
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if model.WorkInRange(fileData.WorkSecs) {
		settings.WorkDuration = time.Duration(fileData.WorkSecs) * time.Second
	}
	if model.BreakInRange(fileData.BreakSecs) {
		settings.BreakDuration = time.Duration(fileData.BreakSecs) * time.Second
	}
	var geometry model.Geometry
	if err := geometry.UnmarshalText([]byte(fileData.Geom)); err != nil {
		log.Printf("ignoring stored window geometry: %v", err)
		return
	}
	settings.Geometry = geometry
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return nil
}
