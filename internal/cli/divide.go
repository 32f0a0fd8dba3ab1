package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/scalediv/internal/config"
	"github.com/roach88/scalediv/internal/engine"
	"github.com/roach88/scalediv/internal/scale"
)

// DivideOptions holds flags for the divide command.
type DivideOptions struct {
	*RootOptions
	Engine           string
	Min              string
	Max              string
	MaxMajor         int
	MaxMinor         int
	Step             float64
	Reference        float64
	Base             int
	Inverted         bool
	Symmetric        bool
	IncludeReference bool
	Floating         bool
	Timezone         string
	Week0            string
	Lang             string
}

// DivisionResult is the JSON payload of a computed division.
type DivisionResult struct {
	Axis   string      `json:"axis,omitempty"`
	Kind   string      `json:"kind"`
	Lower  float64     `json:"lower"`
	Upper  float64     `json:"upper"`
	Major  []float64   `json:"major"`
	Medium []float64   `json:"medium"`
	Minor  []float64   `json:"minor"`
	Labels LevelLabels `json:"labels"`
}

// LevelLabels holds the display strings of each tick level.
type LevelLabels struct {
	Major  []string `json:"major"`
	Medium []string `json:"medium"`
	Minor  []string `json:"minor"`
}

// NewDivideCommand creates the divide command.
func NewDivideCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DivideOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "divide",
		Short: "Compute the ticks of one interval",
		Long: `Compute a scale division for an interval given on the command line.

Time bounds accept a number of milliseconds since the Unix epoch or a
date such as 2024-01-01 or 2024-01-01T12:00:00Z. Dates without a zone
are read in --tz.

Examples:
  scalediv divide --min 0 --max 100
  scalediv divide --engine log --min 1 --max 1e6 --major 6
  scalediv divide --engine time --min 2024-01-01 --max 2024-03-01 --tz Europe/Berlin
  scalediv divide --min 0 --max 1234567 --lang de --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDivide(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Engine, "engine", "linear", "engine (linear|log|time)")
	cmd.Flags().StringVar(&opts.Min, "min", "", "lower bound (required)")
	cmd.Flags().StringVar(&opts.Max, "max", "", "upper bound (required)")
	cmd.Flags().IntVar(&opts.MaxMajor, "major", config.DefaultMaxMajor, "maximum number of major steps")
	cmd.Flags().IntVar(&opts.MaxMinor, "minor", config.DefaultMaxMinor, "maximum number of minor steps per major step")
	cmd.Flags().Float64Var(&opts.Step, "step", 0, "fixed major step (0 = automatic)")
	cmd.Flags().Float64Var(&opts.Reference, "reference", 0, "reference value")
	cmd.Flags().IntVar(&opts.Base, "base", 10, "logarithm base (log engine)")
	cmd.Flags().BoolVar(&opts.Inverted, "inverted", false, "reverse the scale direction")
	cmd.Flags().BoolVar(&opts.Symmetric, "symmetric", false, "make the interval symmetric around the reference")
	cmd.Flags().BoolVar(&opts.IncludeReference, "include-reference", false, "extend the interval to the reference")
	cmd.Flags().BoolVar(&opts.Floating, "floating", false, "keep the bounds instead of aligning them")
	cmd.Flags().StringVar(&opts.Timezone, "tz", "", "time zone for the time engine (default local)")
	cmd.Flags().StringVar(&opts.Week0, "week0", "", "week numbering (first_thursday|first_day)")
	cmd.Flags().StringVar(&opts.Lang, "lang", "en", "language for number labels (BCP 47)")

	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")

	return cmd
}

func runDivide(opts *DivideOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	switch {
	case opts.Base < 2:
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, fmt.Sprintf("--base must be at least 2, got %d", opts.Base), nil)
	case opts.MaxMajor < 0 || opts.MaxMinor < 0:
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, "--major and --minor must not be negative", nil)
	}

	axis := opts.axis()
	if errs := config.Validate(&config.File{Axes: []config.Axis{axis}}); len(errs) > 0 {
		return formatter.Fail(ExitCommandError, errs[0].Code, errs[0].Message, nil)
	}

	div, err := axis.Compute(newLogger(opts.RootOptions, cmd))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, "cannot build engine", err)
	}

	kind, _ := axis.Kind()
	loc, _ := axis.Location()
	labeler, err := NewLabeler(kind, opts.Lang, loc)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, "invalid --lang", err)
	}

	formatter.VerboseLog("%s engine, interval [%s, %s], budget %d/%d", kind, opts.Min, opts.Max, opts.MaxMajor, opts.MaxMinor)

	return outputDivision(formatter, labeler, "", kind, div)
}

// axis describes the flags as a single-axis configuration, so the command
// line and axes files go through the same validation.
func (opts *DivideOptions) axis() config.Axis {
	maxMajor, maxMinor := opts.MaxMajor, opts.MaxMinor
	a := config.Axis{
		Name:      "divide",
		Engine:    opts.Engine,
		Min:       parseBound(opts.Min),
		Max:       parseBound(opts.Max),
		MaxMajor:  &maxMajor,
		MaxMinor:  &maxMinor,
		Step:      opts.Step,
		Reference: opts.Reference,
		Base:      opts.Base,
		Timezone:  opts.Timezone,
		Week0:     opts.Week0,
	}

	for _, f := range []struct {
		set  bool
		attr scale.Attribute
	}{
		{opts.IncludeReference, scale.IncludeReference},
		{opts.Symmetric, scale.Symmetric},
		{opts.Floating, scale.Floating},
		{opts.Inverted, scale.Inverted},
	} {
		if f.set {
			a.Attributes = append(a.Attributes, f.attr.Names()...)
		}
	}
	return a
}

func parseBound(s string) config.Bound {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return config.Number(v)
	}
	return config.Date(s)
}

// newDivisionResult builds the JSON payload for div.
func newDivisionResult(labeler *Labeler, axisName string, kind engine.Kind, div scale.Division) DivisionResult {
	nonNil := func(ticks []float64) []float64 {
		if ticks == nil {
			return []float64{}
		}
		return ticks
	}
	return DivisionResult{
		Axis:   axisName,
		Kind:   kind.String(),
		Lower:  div.LowerBound(),
		Upper:  div.UpperBound(),
		Major:  nonNil(div.Major),
		Medium: nonNil(div.Medium),
		Minor:  nonNil(div.Minor),
		Labels: LevelLabels{
			Major:  labeler.Labels(nonNil(div.Major)),
			Medium: labeler.Labels(nonNil(div.Medium)),
			Minor:  labeler.Labels(nonNil(div.Minor)),
		},
	}
}

// outputDivision prints div as JSON or as one line per tick level.
func outputDivision(formatter *OutputFormatter, labeler *Labeler, axisName string, kind engine.Kind, div scale.Division) error {
	result := newDivisionResult(labeler, axisName, kind, div)
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	bounds := labeler.Labels([]float64{result.Lower, result.Upper})
	header := kind.String()
	if axisName != "" {
		header = fmt.Sprintf("%s (%s)", axisName, kind)
	}
	fmt.Fprintf(w, "%s: %s .. %s\n", header, bounds[0], bounds[1])

	for _, level := range []struct {
		name   string
		labels []string
	}{
		{"major", result.Labels.Major},
		{"medium", result.Labels.Medium},
		{"minor", result.Labels.Minor},
	} {
		line := fmt.Sprintf("  %-7s %s", level.name+":", strings.Join(level.labels, "  "))
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	return nil
}
