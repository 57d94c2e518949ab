package target

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	ioutils "harmonize/internal/io"
	"harmonize/internal/model"
)

// Targets maps source paths to target paths and tracks every target path
// produced during a run.
//
// A Targets value is filled during single-threaded enumeration and read-only
// afterwards; it must not be mutated while conversions are in flight.
type Targets struct {
	sourceBase string
	targetBase string
	codec      model.Codec
	exclude    []string

	// target path → source path that claimed it
	paths map[string]string
}

// New creates a Targets for one run. Exclusion patterns are glob patterns
// matched against each file's source-relative path (slash-separated);
// invalid patterns are rejected up front.
func New(sourceBase, targetBase string, codec model.Codec, exclude []string) (*Targets, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return &Targets{
		sourceBase: sourceBase,
		targetBase: targetBase,
		codec:      codec,
		exclude:    exclude,
		paths:      make(map[string]string),
	}, nil
}

// BuildTargetPath computes the target path for one source file and registers
// it in the expected target set.
//
// The filename's final extension is replaced with the output codec's when it
// names the lossless input format; all other names pass through unchanged.
// The file's directory is re-rooted from the source base to the target base
// with its relative path preserved exactly.
//
// Two collision checks guard the mapping: a sibling source file already
// occupying the rewritten name fails with DuplicateOutputNameError, and a
// target path already claimed by an earlier source file fails with
// TargetCollisionError. Aside from the sibling existence check there is no
// file I/O here.
func (t *Targets) BuildTargetPath(entry model.SourceEntry) (model.TargetSpec, error) {
	name := filepath.Base(entry.Path)
	transcode := false

	if idx := strings.LastIndex(name, "."); idx >= 0 && model.IsSourceExtension(name[idx+1:]) {
		name = name[:idx+1] + t.codec.Extension()
		transcode = true

		sibling := filepath.Join(filepath.Dir(entry.Path), name)
		if _, err := os.Lstat(sibling); err == nil {
			return model.TargetSpec{}, &DuplicateOutputNameError{
				SourcePath:  entry.Path,
				SiblingPath: sibling,
			}
		}
	}

	rel, err := filepath.Rel(t.sourceBase, filepath.Dir(entry.Path))
	if err != nil {
		return model.TargetSpec{}, fmt.Errorf("relativize %s: %w", entry.Path, err)
	}

	targetPath := filepath.Join(t.targetBase, rel, name)
	if prior, ok := t.paths[targetPath]; ok {
		return model.TargetSpec{}, &TargetCollisionError{
			TargetPath:      targetPath,
			SourcePath:      entry.Path,
			PriorSourcePath: prior,
		}
	}
	t.paths[targetPath] = entry.Path

	return model.TargetSpec{
		Path:        targetPath,
		SourcePath:  entry.Path,
		IsTranscode: transcode,
	}, nil
}

// Enumerate walks the source tree and returns one ConversionTask per
// non-excluded file, in lexical walk order. Mapping errors and errors
// reading the source tree are fatal: without a complete target set neither
// conversion nor reconciliation is safe.
func (t *Targets) Enumerate() ([]model.ConversionTask, error) {
	var tasks []model.ConversionTask

	err := filepath.WalkDir(t.sourceBase, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(t.sourceBase, path)
		if err != nil {
			return err
		}
		excluded, err := t.isExcluded(rel)
		if err != nil {
			return err
		}
		if excluded {
			return nil
		}

		entry := model.NewSourceEntry(path)
		spec, err := t.BuildTargetPath(entry)
		if err != nil {
			return err
		}
		tasks = append(tasks, model.ConversionTask{Source: entry, Target: spec})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (t *Targets) isExcluded(rel string) (bool, error) {
	rel = filepath.ToSlash(rel)
	for _, pattern := range t.exclude {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// Contains reports whether path is part of the expected target set.
func (t *Targets) Contains(path string) bool {
	_, ok := t.paths[path]
	return ok
}

// Len returns the number of registered target paths.
func (t *Targets) Len() int {
	return len(t.paths)
}

// Sanitize walks the target tree and deletes everything the current run did
// not account for: files absent from the expected target set, and entire
// directories whose source counterpart no longer exists as a directory.
//
// Must run only after every conversion task has completed; running it
// concurrently with in-flight conversions would race against their
// temporary files. Deletions are best-effort and idempotent. report, if
// non-nil, is called with each path before it is deleted.
func (t *Targets) Sanitize(report func(path string)) error {
	return filepath.WalkDir(t.targetBase, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		if d.IsDir() {
			if path == t.targetBase {
				return nil
			}
			rel, err := filepath.Rel(t.targetBase, path)
			if err != nil {
				return err
			}
			counterpart := filepath.Join(t.sourceBase, rel)
			if info, err := os.Stat(counterpart); err != nil || !info.IsDir() {
				if report != nil {
					report(path)
				}
				ioutils.DeleteIfExists(path)
				return filepath.SkipDir
			}
			return nil
		}

		if !t.Contains(path) {
			if report != nil {
				report(path)
			}
			ioutils.DeleteIfExists(path)
		}
		return nil
	})
}
