package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/handiism/autoartists/internal/artists"
	"github.com/handiism/autoartists/internal/audio"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ErrInvalidSettings is returned when settings fail validation or an
// environment override cannot be parsed.
var ErrInvalidSettings = errors.New("invalid settings")

// Environment variables read by ApplyEnv.
const (
	EnvAuto          = "AUTOARTISTS_AUTO"
	EnvOverwrite     = "AUTOARTISTS_OVERWRITE"
	EnvLibrary       = "AUTOARTISTS_LIBRARY"
	EnvSingleArtists = "AUTOARTISTS_SINGLE_ARTISTS"
	EnvLogLevel      = "AUTOARTISTS_LOG_LEVEL"
)

// Settings holds all configuration options.
type Settings struct {
	// Extraction settings
	Auto          bool     `json:"auto"`
	Overwrite     bool     `json:"overwrite"`
	Separators    []string `json:"separators"`
	SingleArtists []string `json:"single_artists"`

	// Library settings
	LibraryPath        string `json:"library_path"`
	MaxConcurrentReads int    `json:"max_concurrent_reads"`

	// Tag settings
	WriteTags    bool   `json:"write_tags"`
	ArtistsFrame string `json:"artists_frame"`

	Log LogSettings `json:"log"`
}

// LogSettings configures the application logger.
type LogSettings struct {
	Level      string `json:"level"`  // debug, info, warn, error
	Format     string `json:"format"` // console, json
	Output     string `json:"output"` // stderr, stdout, file, both
	FilePath   string `json:"file_path"`
	MaxSize    int    `json:"max_size"` // MB
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		Auto:          false,
		Overwrite:     true,
		Separators:    artists.DefaultSeparators(),
		SingleArtists: []string{},

		LibraryPath:        filepath.Join(homeDir, "Music"),
		MaxConcurrentReads: 8,

		WriteTags:    true,
		ArtistsFrame: "ARTISTS",

		Log: LogSettings{
			Level:      "info",
			Format:     "console",
			Output:     "stderr",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// DefaultPath returns the settings file location in the user configuration
// directory, falling back to the working directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "autoartists.json"
	}
	return filepath.Join(dir, "autoartists", "settings.json")
}

// Load reads settings from a JSON file. Keys missing from the file keep
// their default values; a missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads the given .env files (".env" when none are given; missing
// files are skipped) into the process environment and then applies the
// AUTOARTISTS_* overrides. Variables already set in the environment win over
// .env values.
func (s *Settings) ApplyEnv(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	existing := lo.Filter(envFiles, func(path string, _ int) bool {
		_, err := os.Stat(path)
		return err == nil
	})
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if v, ok := os.LookupEnv(EnvAuto); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidSettings, EnvAuto, v)
		}
		s.Auto = b
	}
	if v, ok := os.LookupEnv(EnvOverwrite); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidSettings, EnvOverwrite, v)
		}
		s.Overwrite = b
	}
	if v, ok := os.LookupEnv(EnvLibrary); ok && v != "" {
		s.LibraryPath = v
	}
	if v, ok := os.LookupEnv(EnvSingleArtists); ok {
		s.SingleArtists = lo.Filter(strings.Split(v, "|"), func(name string, _ int) bool {
			return strings.TrimSpace(name) != ""
		})
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		s.Log.Level = v
	}
	return nil
}

// Validate checks settings for values no component can work with. An empty
// separator list is valid and disables generic splitting.
func (s *Settings) Validate() error {
	if s.MaxConcurrentReads < 0 {
		return fmt.Errorf("%w: max_concurrent_reads must not be negative", ErrInvalidSettings)
	}
	if strings.TrimSpace(s.ArtistsFrame) == "" {
		return fmt.Errorf("%w: artists_frame must not be empty", ErrInvalidSettings)
	}
	return nil
}

// ExtractorOptions converts settings to artist extractor options.
func (s *Settings) ExtractorOptions(logger *zap.Logger) []artists.Option {
	return []artists.Option{
		artists.WithSeparators(s.Separators),
		artists.WithSingleArtists(s.SingleArtists),
		artists.WithLogger(logger),
	}
}

// NewExtractor builds the artist extractor described by the settings.
func (s *Settings) NewExtractor(logger *zap.Logger) *artists.Extractor {
	return artists.New(s.ExtractorOptions(logger)...)
}

// ToTagConfig converts settings to the tag configuration.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	cfg.ModifyTags = s.WriteTags
	cfg.ArtistsFrame = s.ArtistsFrame
	return cfg
}
