// Package codec wraps the external audio tools harmonize shells out to.
//
// Decoding and encoding are not done in-process: the flac, lame and opusenc
// binaries do the actual sample work, and this package owns starting them,
// plumbing bytes between them, and classifying their exit status and stderr
// output.
//
// The tools disagree about what stderr means, and that difference is part
// of the contract here:
//
//   - flac may print warnings while still decoding successfully; a zero
//     exit with stderr output is reported as a warning, not a failure.
//   - lame is known to signal real problems on stderr while still exiting
//     zero; any stderr output fails the encode.
//   - opusenc is trusted on exit status alone.
package codec
