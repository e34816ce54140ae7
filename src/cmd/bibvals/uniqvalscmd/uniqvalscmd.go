package uniqvalscmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bibvals/src/internal/bibdb"
	"bibvals/src/internal/bibtex"
	"bibvals/src/internal/config"
	"bibvals/src/internal/report"
	"bibvals/src/internal/tabulate"
	"bibvals/src/internal/yamldb"
)

// UsageError reports an invalid invocation (bad arguments, flags or BIBFILE path).
type UsageError struct{ Err error }

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// DefaultParsers reads .yaml/.yml files as YAML databases and everything else as BibTeX.
func DefaultParsers() *bibdb.Registry {
	r := bibdb.NewRegistry("bibtex", bibtex.Parser{})
	r.Register("yaml", yamldb.Parser{}, ".yaml", ".yml")
	return r
}

// New returns the command that tabulates field values across a database.
func New(parsers *bibdb.Registry) *cobra.Command {
	var (
		configPath string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:   "bibvals BIBFILE [FIELD]",
		Short: "Show unique values of a field across a BibTeX database",
		Long: `Show unique values of a field across a BibTeX database.

If FIELD is not given, instead shows counts of all field names used in the
database. Entries lacking FIELD are counted under <None>.`,
		Args:          checkArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			printer, err := report.NewPrinter(cfg.Locale)
			if err != nil {
				return err
			}
			path, field := args[0], ""
			if len(args) > 1 {
				field = args[1]
			}
			name, parser := parsers.For(path)
			if verbose {
				if cfg.ConfigPath != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "using config %s\n", cfg.ConfigPath)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "parsing %s as %s\n", path, name)
			}
			db, err := parser.Parse(path)
			if err != nil {
				return err
			}
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "parsed %d entries\n", db.Len())
			}
			res := tabulate.Tabulate(db, field, cfg.Delim)
			return report.Write(cmd.OutOrStdout(), res, printer)
		},
	}
	cmd.Flags().String("delim", config.DefaultDelim, "Delimiter between multiple values (empty disables splitting)")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default ~/.config/bibvals/config.yml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print diagnostics to stderr")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return &UsageError{Err: err} })
	return cmd
}

// checkArgs requires BIBFILE (and at most FIELD) and rejects paths that are
// missing or not regular files before anything is parsed.
func checkArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
		return &UsageError{Err: err}
	}
	fi, err := os.Stat(args[0])
	if err != nil {
		if os.IsNotExist(err) {
			return &UsageError{Err: fmt.Errorf("invalid value for BIBFILE: path %q does not exist", args[0])}
		}
		return &UsageError{Err: fmt.Errorf("invalid value for BIBFILE: %w", err)}
	}
	if !fi.Mode().IsRegular() {
		return &UsageError{Err: fmt.Errorf("invalid value for BIBFILE: %q is not a regular file", args[0])}
	}
	return nil
}
