package target

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"harmonize/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildTargetPath(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()

	tests := []struct {
		name      string
		rel       string
		wantRel   string
		transcode bool
	}{
		{"flac rewritten", "album/01 track.flac", "album/01 track.mp3", true},
		{"case-insensitive", "album/02 track.FLAC", "album/02 track.mp3", true},
		{"other audio kept", "album/bonus.mp3", "album/bonus.mp3", false},
		{"non-audio kept", "album/cover.jpg", "album/cover.jpg", false},
		{"dotted stem", "album/a.b.flac", "album/a.b.mp3", true},
		{"no extension", "album/README", "album/README", false},
		{"nested dirs", "a/b/c/d.flac", "a/b/c/d.mp3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets, err := New(source, dest, model.CodecMP3, nil)
			if err != nil {
				t.Fatal(err)
			}
			path := filepath.Join(source, filepath.FromSlash(tt.rel))
			writeFile(t, path, "x")

			spec, err := targets.BuildTargetPath(model.NewSourceEntry(path))
			if err != nil {
				t.Fatalf("BuildTargetPath() error = %v", err)
			}

			want := filepath.Join(dest, filepath.FromSlash(tt.wantRel))
			if spec.Path != want {
				t.Errorf("Path = %q, want %q", spec.Path, want)
			}
			if spec.IsTranscode != tt.transcode {
				t.Errorf("IsTranscode = %v, want %v", spec.IsTranscode, tt.transcode)
			}
			if spec.SourcePath != path {
				t.Errorf("SourcePath = %q, want %q", spec.SourcePath, path)
			}
			if !targets.Contains(want) {
				t.Error("target path not registered in expected set")
			}
		})
	}
}

func TestBuildTargetPath_OpusExtension(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	targets, err := New(source, dest, model.CodecOpus, nil)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(source, "track.flac")
	writeFile(t, path, "x")

	spec, err := targets.BuildTargetPath(model.NewSourceEntry(path))
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dest, "track.opus"); spec.Path != want {
		t.Errorf("Path = %q, want %q", spec.Path, want)
	}
}

func TestBuildTargetPath_DuplicateOutputName(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	targets, err := New(source, dest, model.CodecMP3, nil)
	if err != nil {
		t.Fatal(err)
	}

	flac := filepath.Join(source, "track.flac")
	writeFile(t, flac, "lossless")
	writeFile(t, filepath.Join(source, "track.mp3"), "lossy")

	_, err = targets.BuildTargetPath(model.NewSourceEntry(flac))
	var dup *DuplicateOutputNameError
	if !errors.As(err, &dup) {
		t.Fatalf("BuildTargetPath() error = %v, want DuplicateOutputNameError", err)
	}
	if dup.SourcePath != flac {
		t.Errorf("SourcePath = %q, want %q", dup.SourcePath, flac)
	}
	if want := filepath.Join(source, "track.mp3"); dup.SiblingPath != want {
		t.Errorf("SiblingPath = %q, want %q", dup.SiblingPath, want)
	}
}

func TestBuildTargetPath_TargetCollision(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	targets, err := New(source, dest, model.CodecMP3, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Same claimed path registered twice without the sibling existing on
	// disk (it was mapped, not present), so the seen-set check fires.
	first := filepath.Join(source, "song.flac")
	writeFile(t, first, "x")
	if _, err := targets.BuildTargetPath(model.NewSourceEntry(first)); err != nil {
		t.Fatal(err)
	}
	os.Remove(first)

	second := filepath.Join(source, "song.mp3")
	writeFile(t, second, "x")
	_, err = targets.BuildTargetPath(model.NewSourceEntry(second))
	var collision *TargetCollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("BuildTargetPath() error = %v, want TargetCollisionError", err)
	}
	if collision.PriorSourcePath != first || collision.SourcePath != second {
		t.Errorf("collision owners = (%q, %q), want (%q, %q)",
			collision.PriorSourcePath, collision.SourcePath, first, second)
	}
}

func TestEnumerate(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()

	writeFile(t, filepath.Join(source, "album", "01.flac"), "a")
	writeFile(t, filepath.Join(source, "album", "02.flac"), "b")
	writeFile(t, filepath.Join(source, "album", "cover.jpg"), "c")
	writeFile(t, filepath.Join(source, "notes.txt"), "d")

	targets, err := New(source, dest, model.CodecMP3, nil)
	if err != nil {
		t.Fatal(err)
	}
	tasks, err := targets.Enumerate()
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}

	if len(tasks) != 4 {
		t.Fatalf("Enumerate() returned %d tasks, want 4", len(tasks))
	}
	if targets.Len() != len(tasks) {
		t.Errorf("expected set has %d entries for %d tasks", targets.Len(), len(tasks))
	}

	// The target path set contains no duplicates by construction; verify
	// the specs agree with it.
	seen := make(map[string]bool)
	for _, task := range tasks {
		if seen[task.Target.Path] {
			t.Errorf("duplicate target path %q", task.Target.Path)
		}
		seen[task.Target.Path] = true
		if !targets.Contains(task.Target.Path) {
			t.Errorf("task target %q missing from expected set", task.Target.Path)
		}
	}
}

func TestEnumerate_Exclusions(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()

	writeFile(t, filepath.Join(source, "album", "01.flac"), "a")
	writeFile(t, filepath.Join(source, "album", "01.flac.bak"), "b")
	writeFile(t, filepath.Join(source, "scratch", "wip.flac"), "c")
	writeFile(t, filepath.Join(source, "notes.txt"), "d")

	tests := []struct {
		name    string
		exclude []string
		want    int
	}{
		{"none", nil, 4},
		{"backups anywhere", []string{"**/*.bak"}, 3},
		{"whole directory", []string{"scratch/**"}, 3},
		{"top-level file", []string{"notes.txt"}, 3},
		{"stacked", []string{"**/*.bak", "scratch/**", "notes.txt"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets, err := New(source, dest, model.CodecMP3, tt.exclude)
			if err != nil {
				t.Fatal(err)
			}
			tasks, err := targets.Enumerate()
			if err != nil {
				t.Fatal(err)
			}
			if len(tasks) != tt.want {
				t.Errorf("Enumerate() with %v returned %d tasks, want %d", tt.exclude, len(tasks), tt.want)
			}
		})
	}
}

func TestEnumerate_CollisionAborts(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()

	writeFile(t, filepath.Join(source, "a.flac"), "x")
	writeFile(t, filepath.Join(source, "a.mp3"), "y")

	targets, err := New(source, dest, model.CodecMP3, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = targets.Enumerate()
	var dup *DuplicateOutputNameError
	if !errors.As(err, &dup) {
		t.Fatalf("Enumerate() error = %v, want DuplicateOutputNameError", err)
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	if _, err := New(t.TempDir(), t.TempDir(), model.CodecMP3, []string{"[unclosed"}); err == nil {
		t.Error("New() with invalid pattern should fail")
	}
}

func TestSanitize(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()

	// Source has one album with one file.
	writeFile(t, filepath.Join(source, "album", "keep.flac"), "x")

	targets, err := New(source, dest, model.CodecMP3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := targets.Enumerate(); err != nil {
		t.Fatal(err)
	}

	// Target has the expected file, a stale file, and a whole directory
	// whose source counterpart is gone.
	writeFile(t, filepath.Join(dest, "album", "keep.mp3"), "x")
	writeFile(t, filepath.Join(dest, "album", "stale.mp3"), "x")
	writeFile(t, filepath.Join(dest, "removed", "deep", "old.mp3"), "x")

	var deleted []string
	if err := targets.Sanitize(func(path string) { deleted = append(deleted, path) }); err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}

	if _, err := os.Lstat(filepath.Join(dest, "album", "keep.mp3")); err != nil {
		t.Error("expected target was deleted")
	}
	if _, err := os.Lstat(filepath.Join(dest, "album", "stale.mp3")); !os.IsNotExist(err) {
		t.Error("stale target file survived Sanitize")
	}
	if _, err := os.Lstat(filepath.Join(dest, "removed")); !os.IsNotExist(err) {
		t.Error("orphaned target directory survived Sanitize")
	}
	if len(deleted) != 2 {
		t.Errorf("Sanitize() reported %d deletions, want 2: %v", len(deleted), deleted)
	}
}

func TestSanitize_SourceFileBecameDirectory(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()

	// On the source side "entry" is a file; on the target side it is a
	// directory left over from an earlier layout.
	writeFile(t, filepath.Join(source, "entry"), "now a file")
	writeFile(t, filepath.Join(dest, "entry", "old.mp3"), "x")

	targets, err := New(source, dest, model.CodecMP3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := targets.Enumerate(); err != nil {
		t.Fatal(err)
	}
	if err := targets.Sanitize(nil); err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}

	if _, err := os.Lstat(filepath.Join(dest, "entry")); !os.IsNotExist(err) {
		t.Error("target directory shadowing a source file survived Sanitize")
	}
}

func TestSanitize_MissingTargetRoot(t *testing.T) {
	source := t.TempDir()
	dest := filepath.Join(t.TempDir(), "never-created")

	targets, err := New(source, dest, model.CodecMP3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := targets.Sanitize(nil); err != nil {
		t.Errorf("Sanitize() on missing target root should be a no-op, got %v", err)
	}
}
