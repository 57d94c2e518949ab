package model

import (
	"path/filepath"
	"strings"
)

// SourceEntry is one file found under the source root.
//
// Entries are immutable for the duration of a run. If the underlying file
// changes while the run is in flight, later stages operate on the attribute
// snapshot they take at task start, not on a re-read.
type SourceEntry struct {
	// Path is the file's path under the source root.
	Path string

	// IsAudioSource is true when the file's extension matches the
	// lossless input format and the file will be transcoded.
	IsAudioSource bool
}

// NewSourceEntry builds a SourceEntry for path, classifying it by extension.
func NewSourceEntry(path string) SourceEntry {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return SourceEntry{
		Path:          path,
		IsAudioSource: ext != "" && IsSourceExtension(ext),
	}
}

// TargetSpec is the computed destination for one SourceEntry.
type TargetSpec struct {
	// Path is the destination file path under the target root.
	Path string

	// SourcePath is the originating source file.
	SourcePath string

	// IsTranscode is true when the source is decoded and re-encoded
	// rather than copied byte-for-byte.
	IsTranscode bool
}

// ConversionTask pairs a source entry with its computed target. It is a
// stateless value type and safe to hand across concurrency boundaries.
type ConversionTask struct {
	Source SourceEntry
	Target TargetSpec
}

// Action describes what a completed task did.
type Action int

const (
	// ActionNone means the task failed before doing any work.
	ActionNone Action = iota

	// ActionSkipped means source and target were already in sync.
	ActionSkipped

	// ActionCopied means the source was copied verbatim.
	ActionCopied

	// ActionTranscoded means the source was decoded and re-encoded.
	ActionTranscoded
)

// String returns a short lower-case name for the action.
func (a Action) String() string {
	switch a {
	case ActionSkipped:
		return "skipped"
	case ActionCopied:
		return "copied"
	case ActionTranscoded:
		return "transcoded"
	default:
		return "none"
	}
}

// ConversionResult reports the outcome of one task. Err is nil on success.
type ConversionResult struct {
	Task   ConversionTask
	Action Action
	Err    error
}
