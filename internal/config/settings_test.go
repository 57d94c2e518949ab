package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.Codec != "mp3" {
		t.Errorf("Codec = %q, want mp3", settings.Codec)
	}
	if settings.Concurrency <= 0 {
		t.Errorf("Concurrency = %d, want > 0", settings.Concurrency)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	saved := &Settings{
		Codec:          "opus",
		Concurrency:    3,
		Exclude:        []string{"**/*.bak", "scratch/**"},
		EncoderOptions: []string{"--bitrate", "128"},
		Quiet:          true,
	}
	if err := saved.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, saved) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, saved)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("codec = ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of invalid TOML should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{"defaults", *DefaultSettings(), false},
		{"opus", Settings{Codec: "opus"}, false},
		{"bad codec", Settings{Codec: "wav"}, true},
		{"negative concurrency", Settings{Codec: "mp3", Concurrency: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
