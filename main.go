package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"book-catalog/library"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "book-catalog.yaml"

type options struct {
	configPath string
	dataPath   string
	backend    string
	maxYear    int
	logLevel   string

	store *library.BookStore
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "book-catalog",
		Short:         "Manage a small catalog of books stored in a flat file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML config file (default "+defaultConfigFile+" if present)")
	pf.StringVar(&opts.dataPath, "data", "", "path of the backing store (default books_data.json)")
	pf.StringVar(&opts.backend, "backend", "", "storage backend: json or sqlite")
	pf.IntVar(&opts.maxYear, "max-year", 0, "latest accepted publication year")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newAddCmd(opts),
		newDeleteCmd(opts),
		newSearchCmd(opts),
		newListCmd(opts),
		newStatusCmd(opts),
	)
	return root
}

// setup merges config file and flags, configures logging and opens the store.
func (o *options) setup(cmd *cobra.Command) error {
	path, optional := o.configPath, false
	if path == "" {
		path, optional = defaultConfigFile, true
	}
	cfg, err := library.LoadConfig(path, optional)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataPath = o.dataPath
	}
	if flags.Changed("backend") {
		cfg.Backend = o.backend
	}
	if flags.Changed("max-year") {
		cfg.MaxYear = o.maxYear
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cmd.ErrOrStderr(), level))

	o.store, err = library.Open(cfg)
	if err != nil {
		return err
	}
	slog.Debug("store opened", "backend", cfg.Backend, "path", cfg.DataPath, "max_year", cfg.MaxYear)
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelWarn, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
		w = colorable.NewColorable(f)
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	}))
}

// ------------------ Commands ------------------

func newAddCmd(opts *options) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "add <title> <author> <year>",
		Short: "Add a new book",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.store.Add(args[0], args[1], args[2], status)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Report())
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "initial status: available or checked_out")
	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.store.Delete(args[0])
			if err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Report())
			return nil
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search books by title, author or year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.store.Search(args[0])
			if err != nil {
				return describe(err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, res.Books)
			}
			if !res.Found() {
				fmt.Fprintln(out, res.Report())
				return nil
			}
			fmt.Fprintln(out, "Books found:")
			printTable(out, res.Books)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"display"},
		Short:   "List all books",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := opts.store.ListAll()
			if err != nil {
				return describe(err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, res.Books)
			}
			if res.Empty() {
				fmt.Fprintln(out, res.Report())
				return nil
			}
			fmt.Fprintln(out, "All books:")
			printTable(out, res.Books)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print books as JSON")
	return cmd
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "status <id> <new_status>",
		Aliases: []string{"change-status"},
		Short:   "Change the status of a book (available or checked_out)",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.store.ChangeStatus(args[0], args[1])
			if err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Report())
			return nil
		},
	}
}

// describe turns store errors into messages for the terminal.
func describe(err error) error {
	var verr *library.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%s %s (got %q)", verr.Field, verr.Reason, strings.TrimSpace(verr.Value))
	}
	var serr *library.StorageError
	if errors.As(err, &serr) {
		return fmt.Errorf("storage failure: %w", err)
	}
	return err
}
