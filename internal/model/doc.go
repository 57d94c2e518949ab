// Package model defines the core data structures used throughout harmonize.
//
// # Codec
//
// Codec identifies the lossy output format and knows its file extension and
// default encoder options:
//
//	codec, err := model.ParseCodec("opus")
//	fmt.Println(codec.Extension()) // "opus"
//
// # SourceEntry and TargetSpec
//
// SourceEntry is one file discovered under the source root. TargetSpec is
// the destination computed for it:
//
//	entry := model.NewSourceEntry("/music/album/01.flac")
//	fmt.Println(entry.IsAudioSource) // true
//
// # ConversionTask and ConversionResult
//
// A ConversionTask pairs a SourceEntry with its TargetSpec and is a plain
// value type, safe to hand across goroutines. A ConversionResult reports
// what happened to one task: skipped, copied, transcoded, or failed.
package model
