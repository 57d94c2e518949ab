package model

import (
	"fmt"
	"strings"
)

// SourceExtension is the file extension of lossless inputs subject to
// transcoding. Matching is case-insensitive.
const SourceExtension = "flac"

// Codec identifies the lossy output format.
type Codec string

const (
	CodecMP3  Codec = "mp3"
	CodecOpus Codec = "opus"
)

// Codecs lists all supported output codecs.
var Codecs = []Codec{CodecMP3, CodecOpus}

// ParseCodec validates a user-supplied codec name.
func ParseCodec(name string) (Codec, error) {
	c := Codec(strings.ToLower(name))
	for _, known := range Codecs {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported codec %q (supported: mp3, opus)", name)
}

// Extension returns the codec's file extension without a leading dot,
// matching how filenames are rewritten during path mapping.
func (c Codec) Extension() string {
	return string(c)
}

// IsSourceExtension reports whether ext (without leading dot) names the
// lossless input format.
func IsSourceExtension(ext string) bool {
	return strings.EqualFold(ext, SourceExtension)
}
