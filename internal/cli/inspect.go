package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/arloliu/datablock"
	"github.com/arloliu/datablock/block"
	"github.com/arloliu/datablock/bytebuf"
	"github.com/arloliu/datablock/section"
)

func newDumpCommand(a *app) *cobra.Command {
	var compact, stripComments, asBase64 bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a DataBlock file in the text format",
		Long: `Dump prints the text form of a DataBlock file. With --base64 it prints the
binary form encoded as base64 instead, for embedding in other documents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := block.LoadFile(args[0], a.decoderOptions(stripComments)...)
			if err != nil {
				return err
			}

			if asBase64 {
				enc, err := block.NewBinaryEncoder(block.WithBinaryEncoderLogger(a.logger))
				if err != nil {
					return err
				}
				data, err := enc.Encode(b)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.stdout, bytebuf.NewByteBufferFrom(data).Base64())

				return err
			}

			enc, err := block.NewTextEncoder(block.WithCompact(compact), block.WithTextEncoderLogger(a.logger))
			if err != nil {
				return err
			}
			_, err = enc.WriteTo(a.stdout, b)

			return err
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "write compact text")
	cmd.Flags().BoolVar(&stripComments, "strip-comments", false, "omit comments")
	cmd.Flags().BoolVar(&asBase64, "base64", false, "print the binary form as base64")

	return cmd
}

// treeStats counts the entries of a tree.
type treeStats struct {
	params   int
	blocks   int
	comments int
	depth    int
}

func collectStats(b *block.DataBlock, depth int, st *treeStats) {
	st.depth = max(st.depth, depth)
	for i := range b.ParamsCount() {
		if b.ParamType(i).IsComment() {
			st.comments++
		} else {
			st.params++
		}
	}
	for child := range b.DataBlocks() {
		if child.IsComment() {
			st.comments++
			continue
		}
		st.blocks++
		collectStats(child, depth+1, st)
	}
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Verify that DataBlock files load and report their content",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := a.checkFile(path); err != nil {
					fmt.Fprintf(a.stdout, "%s: FAIL %v\n", path, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed the check", failed, len(args))
			}

			return nil
		},
	}
}

func (a *app) checkFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	kind := "text"
	if section.IsBinary(data) {
		kind = "binary"
		var header section.BinaryHeader
		if err := header.Parse(data); err != nil {
			return err
		}
		if header.Flags.HasChecksum() {
			kind += "+crc32"
		}
		if comp := header.Flags.Compression(); comp != 0 {
			kind += "+" + comp.String()
		}
	}

	b, err := block.Load(data, append(a.decoderOptions(false), block.WithSource(path))...)
	if err != nil {
		return err
	}

	var st treeStats
	collectStats(b, 0, &st)
	level.Debug(a.logger).Log("msg", "checked datablock", "path", path, "format", kind,
		"params", st.params, "blocks", st.blocks, "comments", st.comments, "depth", st.depth)
	fmt.Fprintf(a.stdout, "%s: OK %s, %s, %s params, %s blocks, %s comments, depth %d\n",
		path, kind, humanize.Bytes(uint64(len(data))),
		humanize.Comma(int64(st.params)), humanize.Comma(int64(st.blocks)), humanize.Comma(int64(st.comments)), st.depth)

	return nil
}

func newDigestCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "digest <file>...",
		Short: "Print the BLAKE3 content fingerprint of DataBlock files",
		Long: `The fingerprint covers params, child blocks and comments. It does not depend
on the file format or its layout, so a text file and its binary conversion
share the same fingerprint.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				b, err := block.LoadFile(path, a.decoderOptions(false)...)
				if err != nil {
					return err
				}
				digest, err := datablock.Fingerprint(b)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "%s  %s\n", digest, path)
			}

			return nil
		},
	}
}
