package codec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"harmonize/internal/model"
)

// Encoder consumes a decoded audio stream and writes an encoded file at
// dest. options are passed through to the underlying tool in order, after
// its built-in flags and before the input/output arguments.
type Encoder interface {
	Encode(ctx context.Context, input io.Reader, dest string, options []string) error
}

// EncoderFor returns the encoder implementation for a codec.
func EncoderFor(c model.Codec) (Encoder, error) {
	switch c {
	case model.CodecMP3:
		return LameEncoder{}, nil
	case model.CodecOpus:
		return OpusencEncoder{}, nil
	default:
		return nil, fmt.Errorf("no encoder for codec %q", c)
	}
}

// DefaultOptions returns the encoder options used when the caller supplies
// none. lame defaults to its highest-quality VBR preset; opusenc's own
// defaults are left alone.
func DefaultOptions(c model.Codec) []string {
	if c == model.CodecMP3 {
		return []string{"-V", "0"}
	}
	return nil
}

// LameEncoder encodes MP3 with the lame command-line tool.
type LameEncoder struct{}

func lameArgs(options []string, dest string) []string {
	args := append([]string{"lame", "--quiet"}, options...)
	return append(args, "-", dest)
}

// Encode runs lame reading from input and writing dest. lame emits
// warnings on stderr that indicate real problems even when it exits zero,
// so any stderr output fails the encode.
func (LameEncoder) Encode(ctx context.Context, input io.Reader, dest string, options []string) error {
	args := lameArgs(options, dest)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = input

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	diag := strings.TrimSpace(stderr.String())
	switch {
	case err != nil && diag != "":
		return fmt.Errorf("lame: %w: %s", err, diag)
	case err != nil:
		return fmt.Errorf("lame: %w", err)
	case diag != "":
		return fmt.Errorf("lame: %s", diag)
	}
	return nil
}

// OpusencEncoder encodes Opus with the opusenc command-line tool.
type OpusencEncoder struct{}

func opusencArgs(options []string, dest string) []string {
	args := append([]string{"opusenc", "--quiet"}, options...)
	return append(args, "-", dest)
}

// Encode runs opusenc reading from input and writing dest. Unlike lame,
// opusenc's exit status is trusted: stderr output on a zero exit is not an
// error.
func (OpusencEncoder) Encode(ctx context.Context, input io.Reader, dest string, options []string) error {
	args := opusencArgs(options, dest)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = input

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if diag := strings.TrimSpace(stderr.String()); diag != "" {
			return fmt.Errorf("opusenc: %w: %s", err, diag)
		}
		return fmt.Errorf("opusenc: %w", err)
	}
	return nil
}
