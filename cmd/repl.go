package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vandycarlos/tiny-lang/parser/rdparser"
	"github.com/vandycarlos/tiny-lang/repl"
)

var (
	replPrompt  string
	replHistory string
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read forms interactively",
	Long: `Read forms typed at a prompt and print each one as it is completed.
Forms may span several lines.  Interrupt discards a partial form and end of
input exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return repl.RunRepl(cfg.Repl.Prompt, replOptions(cmd, cfg)...)
	},
}

func replOptions(cmd *cobra.Command, c *Config) []repl.Option {
	opts := []repl.Option{
		repl.WithHistoryFile(c.Repl.History),
		repl.WithReaderConfig(rdparser.WithMaxDepth(c.MaxDepth)),
		repl.WithStdout(cmd.OutOrStdout()),
		repl.WithStderr(cmd.ErrOrStderr()),
	}
	if c.Dump {
		// the format was validated when c was loaded
		render, _ := renderer(c.Format)
		opts = append(opts, repl.WithRenderer(render))
	}
	if in := cmd.InOrStdin(); in != os.Stdin {
		opts = append(opts, repl.WithStdin(io.NopCloser(in)))
	}
	return opts
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replPrompt, "prompt", ">>> ",
		"Prompt displayed before each form")
	replCmd.Flags().StringVar(&replHistory, "history", repl.DefaultHistoryFile,
		"File line history is kept in, empty to disable")
}
