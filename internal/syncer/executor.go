package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"harmonize/internal/codec"
	ioutils "harmonize/internal/io"
	"harmonize/internal/model"
)

// TagCopier is the per-codec tag-copy strategy used during transcodes.
// EncodeArgs may contribute encoder options before encoding starts;
// CopyTags runs against the temporary file once it is encoded.
type TagCopier interface {
	EncodeArgs(source string, warn func(string)) ([]string, error)
	CopyTags(source, dest string, warn func(string)) error
}

// Executor performs one source→target unit of work: a transcode for
// lossless sources, a verbatim copy for everything else.
//
// Work happens in a scoped temporary file next to the final target, which
// is renamed into place only after the source's permission bits and
// modification time have been applied. On any failure the temporary file
// is removed and the final target path is left exactly as it was.
type Executor struct {
	Decoder codec.Decoder
	Encoder codec.Encoder
	Tags    TagCopier

	// Options are passed to the encoder on every transcode.
	Options []string

	// OnEvent receives progress updates. May be nil.
	OnEvent func(ProgressEvent)
}

// SyncFile brings one target in sync with its source.
//
// The source's attributes are snapshotted up front; if an external actor
// mutates the source mid-run, the snapshot, not a late re-read, is what
// ends up on the finished target, which is also what the next run's
// staleness comparison sees.
func (e *Executor) SyncFile(ctx context.Context, task model.ConversionTask) (model.Action, error) {
	sourceInfo, err := os.Lstat(task.Source.Path)
	if err != nil {
		return model.ActionNone, err
	}

	if !NeedsUpdate(sourceInfo, task.Target.Path) {
		e.event(LevelVerbose, "Skipping "+task.Source.Path)
		return model.ActionSkipped, nil
	}

	dir := filepath.Dir(task.Target.Path)
	if err := ioutils.EnsureDir(dir); err != nil {
		return model.ActionNone, err
	}
	tmp, err := ioutils.TempPath(dir, ".temp")
	if err != nil {
		return model.ActionNone, err
	}

	done := false
	defer func() {
		if !done {
			ioutils.DeleteIfExists(tmp)
		}
	}()

	var action model.Action
	if task.Target.IsTranscode {
		e.event(LevelInfo, "Transcoding "+task.Source.Path)
		err = e.transcode(ctx, task.Source.Path, tmp)
		action = model.ActionTranscoded
	} else {
		e.event(LevelInfo, "Copying "+task.Source.Path)
		err = ioutils.CopyFile(task.Source.Path, tmp)
		action = model.ActionCopied
	}
	if err != nil {
		return model.ActionNone, err
	}

	if err := os.Chmod(tmp, sourceInfo.Mode().Perm()); err != nil {
		return model.ActionNone, err
	}
	if err := os.Chtimes(tmp, time.Now(), sourceInfo.ModTime()); err != nil {
		return model.ActionNone, err
	}
	if err := os.Rename(tmp, task.Target.Path); err != nil {
		return model.ActionNone, err
	}

	done = true
	return action, nil
}

// transcode decodes source, encodes the stream into dest, and carries tags
// over. Decode warnings on a clean exit are reported but not fatal; encode
// problems always are.
func (e *Executor) transcode(ctx context.Context, source, dest string) error {
	warn := func(msg string) { e.event(LevelWarning, msg) }

	options := append([]string(nil), e.Options...)
	if e.Tags != nil {
		extra, err := e.Tags.EncodeArgs(source, warn)
		if err != nil {
			return err
		}
		options = append(options, extra...)
	}

	stream, err := e.Decoder.Decode(ctx, source)
	if err != nil {
		return err
	}

	encodeErr := e.Encoder.Encode(ctx, stream.Reader, dest, options)
	stream.Reader.Close()
	warnings, decodeErr := stream.Wait()

	if encodeErr != nil {
		return encodeErr
	}
	if decodeErr != nil {
		return decodeErr
	}
	if warnings != "" {
		warn(fmt.Sprintf("decode %s: %s", source, warnings))
	}

	if e.Tags != nil {
		if err := e.Tags.CopyTags(source, dest, warn); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) event(level ProgressLevel, message string) {
	if e.OnEvent != nil {
		e.OnEvent(ProgressEvent{Message: message, Level: level})
	}
}
