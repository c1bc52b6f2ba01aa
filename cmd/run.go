package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vandycarlos/tiny-lang/lisp"
	"github.com/vandycarlos/tiny-lang/parser"
	"github.com/vandycarlos/tiny-lang/parser/rdparser"
	"github.com/vandycarlos/tiny-lang/repl"
	"github.com/vandycarlos/tiny-lang/watch"
)

// StdinName is the name given to source text read from standard input.
const StdinName = "_stdin_.tiny"

var (
	runExpression bool
	runWatch      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Read tiny source",
	Long: `Read tiny source supplied via the command line, files, or standard
input.  Each source is read until its first syntax error, which is
reported before moving on to the next source.`,
	RunE: runRunE,
}

type source struct {
	name string
	text []byte
}

type runner struct {
	cfg    *Config
	reader lisp.Reader
	render repl.Renderer
	stdout io.Writer
	stderr io.Writer
}

func newRunner(c *Config, stdout, stderr io.Writer) (*runner, error) {
	render, err := renderer(c.Format)
	if err != nil {
		return nil, err
	}
	return &runner{
		cfg:    c,
		reader: parser.NewReader(rdparser.WithMaxDepth(c.MaxDepth)),
		render: render,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

func runRunE(cmd *cobra.Command, args []string) error {
	if runWatch && (runExpression || len(args) == 0) {
		return errors.New("--watch requires source files")
	}
	srcs, err := runReadSources(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	r, err := newRunner(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ok := true
	verbose := !runExpression && len(args) > 0
	for _, src := range srcs {
		if !r.process(src.name, src.text, verbose) {
			ok = false
		}
	}
	if runWatch {
		return r.watch(cmd.Context(), args)
	}
	if !ok {
		return exitStatus(1)
	}
	return nil
}

func runReadSources(args []string, stdin io.Reader) ([]source, error) {
	if runExpression {
		srcs := make([]source, len(args))
		for i := range args {
			srcs[i] = source{
				name: fmt.Sprintf("_expr%d_.tiny", i+1),
				text: []byte(args[i]),
			}
		}
		return srcs, nil
	}
	if len(args) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []source{{name: StdinName, text: b}}, nil
	}
	srcs := make([]source, len(args))
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		srcs[i] = source{name: path, text: b}
	}
	return srcs, nil
}

// process reads every form in text and reports whether it was free of
// syntax errors.
func (r *runner) process(name string, text []byte, verbose bool) bool {
	if verbose {
		log.WithField("file", name).Infof("Compiling %s", name)
	}
	forms, err := r.reader.Read(name, bytes.NewReader(text))
	if r.cfg.Dump {
		for _, v := range forms {
			if rerr := r.render(r.stdout, v); rerr != nil {
				log.WithError(rerr).Error("failed to print form")
				return false
			}
		}
	}
	if err != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
		return false
	}
	log.WithField("file", name).Debugf("read %d forms", len(forms))
	return true
}

func (r *runner) watch(ctx context.Context, files []string) error {
	o, err := watch.New(log, files...)
	if err != nil {
		return err
	}
	defer o.Close()

	log.WithField("files", len(files)).Info("Watching for changes")
	err = o.Run(ctx, func(name string) {
		text, err := os.ReadFile(name)
		if err != nil {
			log.WithError(err).WithField("file", name).Warn("failed to read changed file")
			return
		}
		r.process(name, text, true)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func addRunFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as source text")
	flags.BoolVarP(&runWatch, "watch", "w", false,
		"Read files again each time they change")
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	addRunFlags(runCmd.Flags())
}
