package codec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Decoder starts an external process that decodes a lossless source file
// and exposes the decoded audio as a byte stream.
type Decoder interface {
	Decode(ctx context.Context, path string) (*DecodeStream, error)
}

// DecodeStream is a running decode. Reader carries the decoded audio; Wait
// must be called after the stream has been consumed (or abandoned) to reap
// the process and learn its outcome.
//
// Wait returns diagnostic output on a zero exit as a warning string:
// decode warnings may indicate a problem with the source but do not
// invalidate the output. A non-zero exit is an error.
type DecodeStream struct {
	Reader io.ReadCloser
	Wait   func() (warnings string, err error)
}

// FlacDecoder decodes FLAC files with the flac command-line tool.
type FlacDecoder struct{}

func flacArgs(path string) []string {
	// -c to stdout, -s silence progress, -d decode
	return []string{"flac", "-csd", path}
}

// Decode starts `flac -csd path` and returns its stdout as the stream.
func (FlacDecoder) Decode(ctx context.Context, path string) (*DecodeStream, error) {
	args := flacArgs(path)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &DecodeStream{
		Reader: stdout,
		Wait: func() (string, error) {
			waitErr := cmd.Wait()
			diag := strings.TrimSpace(stderr.String())
			if waitErr != nil {
				if diag != "" {
					return "", fmt.Errorf("flac: %w: %s", waitErr, diag)
				}
				return "", fmt.Errorf("flac: %w", waitErr)
			}
			return diag, nil
		},
	}, nil
}
