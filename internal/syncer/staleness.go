package syncer

import (
	"io/fs"
	"os"
)

// NeedsUpdate reports whether the target file must be (re)generated from
// the source described by sourceInfo.
//
// A target is stale when it does not exist or when its modification time
// differs from the source's. Exact equality is required rather than
// "newer than": a successful sync copies the source mtime onto the target,
// so a clean re-run does zero work, and touching either side re-triggers
// exactly one resync.
func NeedsUpdate(sourceInfo fs.FileInfo, targetPath string) bool {
	targetInfo, err := os.Lstat(targetPath)
	if err != nil {
		return true
	}
	return !targetInfo.ModTime().Equal(sourceInfo.ModTime())
}
