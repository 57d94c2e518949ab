package target

import "fmt"

// DuplicateOutputNameError reports a source directory that contains both a
// lossless file and a sibling whose name equals the lossless file's rewritten
// output name (e.g. track.flac next to track.mp3 when transcoding to mp3).
// Proceeding would let one file's output clobber the other's.
type DuplicateOutputNameError struct {
	// SourcePath is the lossless file whose name was rewritten.
	SourcePath string

	// SiblingPath is the pre-existing source file occupying the
	// rewritten name.
	SiblingPath string
}

func (e *DuplicateOutputNameError) Error() string {
	return fmt.Sprintf("duplicate output name: %s and %s map to the same target file", e.SourcePath, e.SiblingPath)
}

// TargetCollisionError reports two distinct source files mapping to the same
// target path.
type TargetCollisionError struct {
	TargetPath      string
	SourcePath      string
	PriorSourcePath string
}

func (e *TargetCollisionError) Error() string {
	return fmt.Sprintf("target collision: %s claimed by both %s and %s", e.TargetPath, e.PriorSourcePath, e.SourcePath)
}
