package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/handiism/autoartists/internal/artists"
	"github.com/handiism/autoartists/internal/audio"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Auto {
		t.Error("Auto should default to false")
	}
	if !s.Overwrite {
		t.Error("Overwrite should default to true")
	}
	if !reflect.DeepEqual(s.Separators, artists.DefaultSeparators()) {
		t.Errorf("Separators = %q, want defaults", s.Separators)
	}
	if len(s.SingleArtists) != 0 {
		t.Errorf("SingleArtists = %q, want empty", s.SingleArtists)
	}
	if s.ArtistsFrame != "ARTISTS" {
		t.Errorf("ArtistsFrame = %q, want ARTISTS", s.ArtistsFrame)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(s, DefaultSettings()) {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{"auto": true, "single_artists": ["Earth, Wind & Fire"], "log": {"level": "debug"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !s.Auto {
		t.Error("Auto should be loaded from file")
	}
	if !s.Overwrite {
		t.Error("Overwrite should keep its default")
	}
	if !reflect.DeepEqual(s.SingleArtists, []string{"Earth, Wind & Fire"}) {
		t.Errorf("SingleArtists = %q", s.SingleArtists)
	}
	if s.Log.Level != "debug" || s.Log.Format != "console" {
		t.Errorf("Log = %+v, want level debug with default format", s.Log)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	s := DefaultSettings()
	s.Separators = []string{", ", " x "}
	s.SingleArtists = []string{"Simon & Garfunkel"}

	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, s) {
		t.Errorf("Load() = %+v, want %+v", loaded, s)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAuto, "true")
	t.Setenv(EnvOverwrite, "false")
	t.Setenv(EnvLibrary, "/srv/music")
	t.Setenv(EnvSingleArtists, "AC/DC| |Earth, Wind & Fire")
	t.Setenv(EnvLogLevel, "debug")

	s := DefaultSettings()
	if err := s.ApplyEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if !s.Auto || s.Overwrite {
		t.Errorf("Auto=%v Overwrite=%v, want true false", s.Auto, s.Overwrite)
	}
	if s.LibraryPath != "/srv/music" {
		t.Errorf("LibraryPath = %q", s.LibraryPath)
	}
	if want := []string{"AC/DC", "Earth, Wind & Fire"}; !reflect.DeepEqual(s.SingleArtists, want) {
		t.Errorf("SingleArtists = %q, want %q", s.SingleArtists, want)
	}
	if s.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", s.Log.Level)
	}
}

func TestApplyEnv_DotEnvFile(t *testing.T) {
	// Registers the variable for cleanup before godotenv sets it.
	t.Setenv(EnvLibrary, "")
	os.Unsetenv(EnvLibrary)

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(EnvLibrary+"=/from/dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s := DefaultSettings()
	if err := s.ApplyEnv(path); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if s.LibraryPath != "/from/dotenv" {
		t.Errorf("LibraryPath = %q, want /from/dotenv", s.LibraryPath)
	}
}

func TestApplyEnv_InvalidBool(t *testing.T) {
	t.Setenv(EnvAuto, "sometimes")

	err := DefaultSettings().ApplyEnv(filepath.Join(t.TempDir(), "absent.env"))
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("ApplyEnv() error = %v, want ErrInvalidSettings", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"empty separators", func(s *Settings) { s.Separators = nil }, false},
		{"negative reads", func(s *Settings) { s.MaxConcurrentReads = -1 }, true},
		{"blank frame", func(s *Settings) { s.ArtistsFrame = " " }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Validate() error = %v, want ErrInvalidSettings", err)
			}
		})
	}
}

func TestNewExtractor(t *testing.T) {
	s := DefaultSettings()
	s.SingleArtists = []string{"Earth, Wind & Fire"}

	got := s.NewExtractor(nil).GetArtists("Earth, Wind & Fire", "September", nil)
	if want := []string{"Earth, Wind & Fire"}; !reflect.DeepEqual(got, want) {
		t.Errorf("GetArtists() = %q, want %q", got, want)
	}
}

func TestToTagConfig(t *testing.T) {
	s := DefaultSettings()
	s.WriteTags = false
	s.ArtistsFrame = "MULTI_ARTISTS"

	cfg := s.ToTagConfig()
	if cfg.ModifyTags {
		t.Error("ModifyTags should follow WriteTags")
	}
	if cfg.ArtistsFrame != "MULTI_ARTISTS" {
		t.Errorf("ArtistsFrame = %q", cfg.ArtistsFrame)
	}
	if cfg.Artists != audio.TagModify {
		t.Errorf("Artists = %v, want TagModify", cfg.Artists)
	}
}

func TestDefaultPath(t *testing.T) {
	if got := DefaultPath(); filepath.Ext(got) != ".json" {
		t.Errorf("DefaultPath() = %q, want a .json file", got)
	}
}
