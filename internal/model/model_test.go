package model

import "testing"

func TestNewSourceEntry(t *testing.T) {
	tests := []struct {
		path  string
		audio bool
	}{
		{"/music/album/01 track.flac", true},
		{"/music/album/01 track.FLAC", true},
		{"/music/album/01 track.Flac", true},
		{"/music/album/01 track.mp3", false},
		{"/music/album/cover.jpg", false},
		{"/music/album/notes.txt", false},
		{"/music/album/flac", false},
		{"/music/album/archive.flac.bak", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			entry := NewSourceEntry(tt.path)
			if entry.IsAudioSource != tt.audio {
				t.Errorf("NewSourceEntry(%q).IsAudioSource = %v, want %v", tt.path, entry.IsAudioSource, tt.audio)
			}
			if entry.Path != tt.path {
				t.Errorf("NewSourceEntry(%q).Path = %q", tt.path, entry.Path)
			}
		})
	}
}

func TestParseCodec(t *testing.T) {
	tests := []struct {
		name    string
		want    Codec
		wantErr bool
	}{
		{"mp3", CodecMP3, false},
		{"opus", CodecOpus, false},
		{"MP3", CodecMP3, false},
		{"ogg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCodec(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCodec(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCodec(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestCodecExtension(t *testing.T) {
	if got := CodecMP3.Extension(); got != "mp3" {
		t.Errorf("CodecMP3.Extension() = %q, want %q", got, "mp3")
	}
	if got := CodecOpus.Extension(); got != "opus" {
		t.Errorf("CodecOpus.Extension() = %q, want %q", got, "opus")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "none"},
		{ActionSkipped, "skipped"},
		{ActionCopied, "copied"},
		{ActionTranscoded, "transcoded"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}
