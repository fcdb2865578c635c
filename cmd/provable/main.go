package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"provable/internal/version"
)

// errIncomplete: the run finished but some tag ids are incomplete.
// Findings are already printed, so main only sets the exit status.
var errIncomplete = errors.New("incomplete claims found")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "provable",
		Short: "Match @claim{id} tags with their @proof{id} tags",
		Long: `provable scans a directory tree for @claim{id} and @proof{id} tags and
reports every id that is claimed without a proof, proven without a claim,
or tagged more than once.`,
		Args:          cobra.NoArgs,
		RunE:          runCheck,
		SilenceErrors: true,
		Version:       version.Current().Version,
	}

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	root.PersistentFlags().Bool("verbose", false, "log at info level")

	registerConfigFlags(root.Flags())
	root.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	root.Flags().String("format", "pretty", "findings format (pretty|json)")

	// --config_path и т.п. продолжают работать
	root.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(newVersionCmd())
	root.AddCommand(newConfigCmd())
	return root
}

// main builds the CLI and executes it. Any error, including incomplete
// claims, exits with status 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errIncomplete) {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
