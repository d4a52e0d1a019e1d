// Package cli implements the dblk command line tool.
package cli

import (
	"context"
	"io"

	"github.com/go-kit/log"
	"github.com/spf13/cobra"

	"github.com/arloliu/datablock/block"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	logLevel string
	logger   log.Logger
}

func (a *app) decoderOptions(stripComments bool) []block.DecoderOption {
	opts := []block.DecoderOption{block.WithLogger(a.logger)}
	if stripComments {
		opts = append(opts, block.WithoutComments())
	}

	return opts
}

// NewRootCommand builds the dblk command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: log.NewNopLogger()}

	root := &cobra.Command{
		Use:   "dblk",
		Short: "Inspect and convert DataBlock files",
		Long: `dblk reads DataBlock files in the binary or the text format,
converts between them, and reports sizes and content fingerprints.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.stderr, a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger

			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error or none")

	root.AddCommand(
		newConvertCommand(a),
		newDumpCommand(a),
		newCheckCommand(a),
		newDigestCommand(a),
	)

	return root
}

// Execute runs dblk with the given arguments.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}
