// Package audio carries descriptive tags from lossless sources to encoded
// outputs.
//
// # MP3
//
// MP3 outputs are tagged after encoding: the source's vorbis comments are
// read with dhowden/tag and written as ID3v2 frames with bogem/id3v2.
// Embedded cover art is carried over as an attached picture, downscaled
// first when it is oversized. Keys the ID3 mapping cannot represent are
// reported through the warn callback and skipped, never fatal.
//
//	tagger := audio.NewMP3Tagger()
//	err := tagger.CopyTags("a.flac", "a.mp3", warn)
//
// # Opus
//
// Ogg/Opus tags cannot be rewritten in place by anything in this stack, so
// they are supplied to opusenc at encode time instead: OpusTagger turns the
// source's tags into ordered --comment options.
package audio
