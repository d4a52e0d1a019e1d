// Package compress provides the codecs that can wrap the body of a binary
// DataBlock file.
//
// The codec is selected by bits 4-7 of the binary flags word:
//   - None: the body is stored as is
//   - Zstd: best ratio, suited to archived scene and material files
//   - S2: fast with a reasonable ratio
//   - LZ4: fastest decompression, suited to files loaded at startup
//
// Zstd uses the pure Go github.com/klauspost/compress implementation by
// default. Building with cgo and the gozstd tag switches to the
// github.com/valyala/gozstd bindings:
//
//	go build -tags gozstd ./...
//
// All codecs are safe for concurrent use.
package compress
