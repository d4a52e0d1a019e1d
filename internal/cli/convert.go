package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/karrick/godirwalk"
	"github.com/spf13/cobra"

	"github.com/arloliu/datablock/block"
	"github.com/arloliu/datablock/format"
)

// File extensions of the two formats.
const (
	TextExt   = ".blk"
	BinaryExt = ".bin"
)

type convertOptions struct {
	to            string
	compact       bool
	checksum      bool
	compression   string
	recursive     bool
	stripComments bool
}

func newConvertCommand(a *app) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <in> [out]",
		Short: "Convert a DataBlock file between the binary and the text format",
		Long: `Convert loads <in> in either format and writes it in the format selected
with --to. Without [out] the result is written next to <in> with the
extension of the target format (` + TextExt + ` or ` + BinaryExt + `).

With --recursive, <in> is a directory and every ` + TextExt + ` and ` + BinaryExt + ` file
below it is converted next to itself.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, err := opts.saver()
			if err != nil {
				return err
			}

			if opts.recursive {
				if len(args) != 1 {
					return fmt.Errorf("--recursive takes a single directory")
				}

				return a.convertTree(cmd, args[0], opts, save)
			}

			out := ""
			if len(args) == 2 {
				out = args[1]
			}

			return a.convertFile(args[0], out, opts, save)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.to, "to", "text", "target format: text or binary")
	flags.BoolVar(&opts.compact, "compact", false, "write compact text")
	flags.BoolVar(&opts.checksum, "checksum", false, "append a CRC32 footer to binary output")
	flags.StringVar(&opts.compression, "compression", "none", "binary body compression: none, zstd, s2 or lz4")
	flags.BoolVar(&opts.recursive, "recursive", false, "convert every DataBlock file below a directory")
	flags.BoolVar(&opts.stripComments, "strip-comments", false, "drop comments while converting")

	return cmd
}

type saveFunc func(b *block.DataBlock, path string) error

// saver validates the flags and returns the writer of the target format.
func (o *convertOptions) saver() (saveFunc, error) {
	switch strings.ToLower(o.to) {
	case "text":
		textOpts := []block.TextEncoderOption{block.WithCompact(o.compact)}
		return func(b *block.DataBlock, path string) error {
			return block.SaveTextFile(b, path, textOpts...)
		}, nil
	case "binary":
		comp, ok := format.ParseCompressionType(o.compression)
		if !ok {
			return nil, fmt.Errorf("unknown compression %q", o.compression)
		}
		binOpts := []block.BinaryEncoderOption{block.WithChecksum(o.checksum), block.WithCompression(comp)}
		if _, err := block.NewBinaryEncoder(binOpts...); err != nil {
			return nil, err
		}

		return func(b *block.DataBlock, path string) error {
			return block.SaveBinaryFile(b, path, binOpts...)
		}, nil
	default:
		return nil, fmt.Errorf("unknown target format %q: want text or binary", o.to)
	}
}

func (o *convertOptions) targetExt() string {
	if strings.EqualFold(o.to, "binary") {
		return BinaryExt
	}

	return TextExt
}

func (a *app) convertFile(in, out string, opts *convertOptions, save saveFunc) error {
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + opts.targetExt()
	}

	b, err := block.LoadFile(in, a.decoderOptions(opts.stripComments)...)
	if err != nil {
		return err
	}
	if err := save(b, out); err != nil {
		return err
	}

	var size uint64
	if info, err := os.Stat(out); err == nil {
		size = uint64(info.Size()) //nolint: gosec
	}
	level.Info(a.logger).Log("msg", "converted datablock", "in", in, "out", out, "size", size)
	fmt.Fprintf(a.stdout, "%s -> %s (%s)\n", in, out, humanize.Bytes(size))

	return nil
}

func isDataBlockFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == TextExt || ext == BinaryExt
}

func (a *app) convertTree(cmd *cobra.Command, dir string, opts *convertOptions, save saveFunc) error {
	ctx := cmd.Context()

	var files []string
	err := godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if de.IsRegular() && isDataBlockFile(path) {
				files = append(files, path)
			}

			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	// files written below are not revisited
	failed := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.convertFile(path, "", opts, save); err != nil {
			level.Error(a.logger).Log("msg", "failed to convert datablock", "path", path, "err", err)
			fmt.Fprintf(a.stderr, "%s: %v\n", path, err)
			failed++
		}
	}
	level.Info(a.logger).Log("msg", "converted directory", "dir", dir, "files", len(files), "failed", failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failed, len(files))
	}

	return nil
}
