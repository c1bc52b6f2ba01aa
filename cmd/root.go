package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	flagLogLevel string
	flagDump     bool
	flagFormat   string
	flagMaxDepth int

	// cfg is loaded before any command runs.
	cfg = DefaultConfig()

	getenv = os.Getenv
)

// exitStatus is returned by commands that have already reported their
// failure and only need the process to exit unsuccessfully.
type exitStatus int

func (s exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(s))
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tiny [files...]",
	Short: "Read tiny source",
	Long: `Read tiny source text and report syntax errors.

Without a subcommand tiny behaves like "tiny run".`,
	Args:              cobra.ArbitraryArgs,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runRunE,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	var status exitStatus
	if errors.As(err, &status) {
		os.Exit(int(status))
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := LoadConfig(configPath, getenv)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.LogLevel = flagLogLevel
	}
	if flags.Changed("dump") {
		c.Dump = flagDump
	}
	if flags.Changed("format") {
		c.Format = flagFormat
	}
	if flags.Changed("max-depth") {
		c.MaxDepth = flagMaxDepth
	}
	if flags.Changed("prompt") {
		c.Repl.Prompt = replPrompt
	}
	if flags.Changed("history") {
		c.Repl.History = replHistory
	}
	if err := c.validate(); err != nil {
		return err
	}

	log.Out = cmd.ErrOrStderr()
	if err := SetLogLevelString(c.LogLevel); err != nil {
		return err
	}
	log.WithField("config", configPath).Debugf("loaded configuration: %+v", *c)

	cfg = c
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "",
		"Configuration file (default "+DefaultConfigFile+" or $"+EnvConfig+")")
	flags.StringVar(&flagLogLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
	flags.BoolVarP(&flagDump, "dump", "d", false,
		"Print forms as they are read (also $"+EnvDump+"=1, other values are off)")
	flags.StringVar(&flagFormat, "format", formatTree,
		"Output format for printed forms: tree, string, json or spew")
	flags.IntVar(&flagMaxDepth, "max-depth", 0,
		"Maximum list nesting depth, 0 for no limit (default from configuration)")

	addRunFlags(rootCmd.Flags())
}
