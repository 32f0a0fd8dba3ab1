package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/scalediv/internal/config"
	"github.com/roach88/scalediv/internal/engine"
	"github.com/roach88/scalediv/internal/snapshot"
	"github.com/roach88/scalediv/internal/store"
)

// AxisOptions holds flags shared by the axis subcommands.
type AxisOptions struct {
	*RootOptions
	DBPath string
	Lang   string
}

// AxisSummary is one row of `axis list`.
type AxisSummary struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	ConfigHash string `json:"config_hash"`
	Seq        int64  `json:"seq"`
}

// AxisDetail is the output of `axis show`.
type AxisDetail struct {
	AxisSummary
	ID       string      `json:"id"`
	Config   config.Axis `json:"config"`
	Snapshot string      `json:"latest_snapshot,omitempty"`
}

// SaveResult is the output of `axis save`.
type SaveResult struct {
	Axes    int `json:"axes"`
	Changed int `json:"changed"`
}

// ComputeResult is the output of `axis compute`.
type ComputeResult struct {
	DivisionResult
	SnapshotHash string `json:"snapshot_hash"`
	Inserted     bool   `json:"inserted"`
}

// NewAxisCommand creates the axis command and its subcommands.
func NewAxisCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AxisOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "axis",
		Short: "Manage saved axes",
		Long: `Save axes from a file into a database, list and inspect them, and
compute their divisions.

Each computed division is stored as a content-addressed snapshot: computing
an unchanged axis again does not add a row.

Examples:
  scalediv axis save axes.yaml --db axes.db
  scalediv axis list --db axes.db
  scalediv axis compute temperature --db axes.db`,
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "scalediv.db", "path to the SQLite database")

	cmd.AddCommand(newAxisSaveCommand(opts))
	cmd.AddCommand(newAxisListCommand(opts))
	cmd.AddCommand(newAxisShowCommand(opts))
	cmd.AddCommand(newAxisComputeCommand(opts))
	cmd.AddCommand(newAxisDeleteCommand(opts))

	return cmd
}

func newAxisSaveCommand(opts *AxisOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "save <axes-file>",
		Short:         "Validate an axes file and save its axes",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAxisSave(opts, args[0], cmd)
		},
	}
}

func newAxisListCommand(opts *AxisOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved axes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAxisList(opts, cmd)
		},
	}
}

func newAxisShowCommand(opts *AxisOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <name>",
		Short:         "Show the configuration of a saved axis",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAxisShow(opts, args[0], cmd)
		},
	}
}

func newAxisComputeCommand(opts *AxisOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "compute <name>",
		Short:         "Compute and store the division of a saved axis",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAxisCompute(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Lang, "lang", "en", "language for number labels (BCP 47)")
	return cmd
}

func newAxisDeleteCommand(opts *AxisOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a saved axis and its snapshots",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAxisDelete(opts, args[0], cmd)
		},
	}
}

// openStore opens the database, reporting failure as a command error.
func openStore(opts *AxisOptions, formatter *OutputFormatter) (*store.Store, error) {
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("cannot open database %s", opts.DBPath), err)
	}
	formatter.VerboseLog("Opened database %s", opts.DBPath)
	return st, nil
}

// readAxis looks up a saved axis, mapping a missing name to E021.
func readAxis(ctx context.Context, st *store.Store, formatter *OutputFormatter, name string) (store.AxisRecord, error) {
	rec, err := st.ReadAxis(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, formatter.Fail(ExitCommandError, ErrCodeAxisNotFound, fmt.Sprintf("axis not found: %s", name), nil)
	}
	if err != nil {
		return rec, formatter.Fail(ExitCommandError, ErrCodeStore, "cannot read axis", err)
	}
	return rec, nil
}

func summarize(rec store.AxisRecord) AxisSummary {
	return AxisSummary{
		Name:       rec.Name,
		Kind:       rec.Kind,
		ConfigHash: rec.ConfigHash,
		Seq:        rec.Seq,
	}
}

func runAxisSave(opts *AxisOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	f, err := loadAxesFile(formatter, path)
	if err != nil {
		return err
	}

	st, err := openStore(opts, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	changed, err := st.SaveAxes(cmd.Context(), f)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "cannot save axes", err)
	}

	result := SaveResult{Axes: len(f.Axes), Changed: changed}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Saved %d axes (%d changed)\n", result.Axes, result.Changed)
	return nil
}

func runAxisList(opts *AxisOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := st.ListAxes(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "cannot list axes", err)
	}

	summaries := make([]AxisSummary, len(recs))
	for i, rec := range recs {
		summaries[i] = summarize(rec)
	}

	if formatter.Format == "json" {
		return formatter.Success(summaries)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(formatter.Writer, "No axes saved.")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSEQ\tHASH")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.Name, s.Kind, s.Seq, shortHash(s.ConfigHash))
	}
	return tw.Flush()
}

func runAxisShow(opts *AxisOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := readAxis(cmd.Context(), st, formatter, name)
	if err != nil {
		return err
	}

	detail := AxisDetail{AxisSummary: summarize(rec), ID: rec.ID, Config: rec.Config}
	snap, err := st.LatestSnapshot(cmd.Context(), rec.ID)
	switch {
	case err == nil:
		detail.Snapshot = snap.Hash
	case !errors.Is(err, sql.ErrNoRows):
		return formatter.Fail(ExitCommandError, ErrCodeStore, "cannot read snapshots", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(detail)
	}

	data, err := yaml.Marshal(rec.Config)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "cannot encode axis", err)
	}
	w := formatter.Writer
	fmt.Fprintf(w, "# %s (%s), seq %d, config %s\n", rec.Name, rec.Kind, rec.Seq, shortHash(rec.ConfigHash))
	if detail.Snapshot != "" {
		fmt.Fprintf(w, "# latest snapshot %s\n", shortHash(detail.Snapshot))
	}
	_, err = w.Write(data)
	return err
}

func runAxisCompute(opts *AxisOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := readAxis(cmd.Context(), st, formatter, name)
	if err != nil {
		return err
	}

	div, err := rec.Config.Compute(newLogger(opts.RootOptions, cmd))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "cannot compute axis", err)
	}

	kind, err := engine.ParseKind(rec.Kind)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "stored axis has an unknown engine", err)
	}

	snap, inserted, err := st.WriteSnapshot(cmd.Context(), rec.ID, snapshot.New(rec.Name, kind.String(), div))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "cannot store snapshot", err)
	}

	loc, err := rec.Config.Location()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "cannot load time zone", err)
	}
	labeler, err := NewLabeler(kind, opts.Lang, loc)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, "invalid --lang", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ComputeResult{
			DivisionResult: newDivisionResult(labeler, rec.Name, kind, div),
			SnapshotHash:   snap.Hash,
			Inserted:       inserted,
		})
	}

	if err := outputDivision(formatter, labeler, rec.Name, kind, div); err != nil {
		return err
	}
	state := "unchanged"
	if inserted {
		state = "new"
	}
	fmt.Fprintf(formatter.Writer, "snapshot %s (%s)\n", shortHash(snap.Hash), state)
	return nil
}

func runAxisDelete(opts *AxisOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	deleted, err := st.DeleteAxis(cmd.Context(), name)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "cannot delete axis", err)
	}
	if !deleted {
		return formatter.Fail(ExitCommandError, ErrCodeAxisNotFound, fmt.Sprintf("axis not found: %s", name), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"deleted": config.NormalizeName(name)})
	}
	fmt.Fprintf(formatter.Writer, "✓ Deleted %s\n", config.NormalizeName(name))
	return nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
