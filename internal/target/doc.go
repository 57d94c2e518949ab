// Package target computes the destination layout for a sync run and prunes
// the target tree afterwards.
//
// A Targets value owns the mapping from source paths to target paths and
// the set of every target path produced during the current run. That set is
// the authoritative definition of "what should exist" under the target
// root: enumeration fills it, and Sanitize deletes everything in the target
// tree that it does not account for.
//
//	targets, _ := target.New("/music/flac", "/music/mp3", model.CodecMP3, nil)
//	tasks, _ := targets.Enumerate()
//	// ... run the tasks ...
//	targets.Sanitize(nil)
//
// Mapping is deterministic and collision-checked. Two distinct source files
// that would land on the same target path are a configuration error in the
// source tree and fail the run before any conversion work starts.
package target
