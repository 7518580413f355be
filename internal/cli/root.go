package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/pux2html/internal/buildinfo"
	"github.com/dmitrijs2005/pux2html/internal/common"
	"github.com/dmitrijs2005/pux2html/internal/config"
	"github.com/dmitrijs2005/pux2html/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// minArgs is the fewest raw arguments that can name both files.
const minArgs = 2

const usageLine = "pux2html -i <inputfile> -o <outputfile> [-v|--verbose]"

// NewRootCmd constructs the root command; opts are passed to the App.
func NewRootCmd(opts ...AppOption) *cobra.Command {
	var defaults config.Config
	defaults.LoadDefaults()

	parsed := defaults
	var configPath string

	cmd := &cobra.Command{
		Use:           usageLine,
		Short:         "Convert a 1Password .1pux export into a single HTML report",
		Version:       buildinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: unexpected arguments %q", common.ErrUsage, args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := defaults
			if err := config.LoadJSON(configPath, &cfg); err != nil {
				return err
			}
			config.Overlay(cmd.Flags(), &parsed, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			color := isTerminal(errOut)
			log, err := logging.New(logging.Options{
				Format:  cfg.LogFormat,
				Verbose: cfg.Verbose,
				Out:     errOut,
				Color:   color,
			})
			if err != nil {
				return fmt.Errorf("%w: %v", common.ErrUsage, err)
			}

			appOpts := append([]AppOption{WithErrorOutput(errOut, color)}, opts...)
			_, err = NewApp(&cfg, log, appOpts...).Run(cmd.Context())
			if err != nil {
				log.Error(cmd.Context(), "conversion failed", "error", err)
			}
			return err
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", common.ErrUsage, err)
	})

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.StringVarP(&configPath, config.FlagConfig, "c", "", "JSON config file")
	config.RegisterFlags(fs, &parsed)

	return cmd
}

// Execute runs the command with args (without the program name) and returns
// the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...AppOption) int {
	cmd := NewRootCmd(opts...)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	var err error
	if len(args) < minArgs && !wantsInfo(args) {
		err = fmt.Errorf("%w: expected at least -i <inputfile> -o <outputfile>", common.ErrUsage)
	} else {
		err = cmd.ExecuteContext(ctx)
	}

	if errors.Is(err, common.ErrUsage) {
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return ExitCode(err)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, common.ErrUsage):
		return 2
	default:
		return 1
	}
}

func wantsInfo(args []string) bool {
	for _, a := range args {
		switch a {
		case "-h", "--help", "--version":
			return true
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
