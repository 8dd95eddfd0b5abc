package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"epiview/domain/series"
	"epiview/internal/config"
	"epiview/internal/dashboard"
	"epiview/internal/export"
	"epiview/internal/fetch"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "epiview-cli",
		Short: "epiview CLI for pulling, filtering and exporting dashboard datasets",
	}

	rootCmd.AddCommand(
		newPullCmd(),
		newFilterCmd(),
		newSummaryCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadRegistry() (*dashboard.Registry, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return dashboard.NewRegistry(cfg, fetch.NewClient(cfg.HTTP.Timeout)), nil
}

type filterFlags struct {
	country string
	from    string
	to      string
	min     string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.country, "country", "", "Country name (or \"all\")")
	cmd.Flags().StringVar(&f.from, "from", "", "Inclusive start year")
	cmd.Flags().StringVar(&f.to, "to", "", "Inclusive end year")
	cmd.Flags().StringVar(&f.min, "min", "", "Minimum metric value")
}

// readyDashboard resolves slug, runs the activation fetch, and fails loudly
// on the error state; the CLI has no loading UI to fall back to.
func readyDashboard(cmd *cobra.Command, slug string) (*dashboard.Dashboard, []series.CountryRecord, error) {
	reg, err := loadRegistry()
	if err != nil {
		return nil, nil, err
	}
	d, err := reg.Get(slug)
	if err != nil {
		return nil, nil, err
	}

	d.Activate(cmd.Context())
	snap := d.Snapshot()
	if snap.Status != fetch.StatusReady {
		return nil, nil, fmt.Errorf("%s dataset unavailable: %s", d.Slug, snap.Message)
	}
	return d, snap.Records, nil
}

func newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fetch every dashboard dataset once and report their states",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}

			warmErr := reg.WarmUp(cmd.Context())
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DASHBOARD\tSTATUS\tCOUNTRIES")
			for _, d := range reg.All() {
				snap := d.Snapshot()
				fmt.Fprintf(w, "%s\t%s\t%d\n", d.Slug, snap.Status, len(snap.Records))
			}
			w.Flush()
			return warmErr
		},
	}
}

func newFilterCmd() *cobra.Command {
	var flags filterFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "filter [dashboard]",
		Short: "Print a dashboard's table after applying the given filters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, records, err := readyDashboard(cmd, args[0])
			if err != nil {
				return err
			}
			spec, err := d.ParseSpec(flags.country, flags.from, flags.to, flags.min)
			if err != nil {
				return err
			}
			filtered := series.Apply(records, spec)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(filtered)
			}

			headers, rows := d.Table(filtered)
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no data matches the current filters")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join(headers, "\t"))
			for _, row := range rows {
				fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			return w.Flush()
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit filtered records as JSON")
	return cmd
}

func newSummaryCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "summary [dashboard]",
		Short: "Print headline figures for a dashboard's (filtered) dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, records, err := readyDashboard(cmd, args[0])
			if err != nil {
				return err
			}
			spec, err := d.ParseSpec(flags.country, flags.from, flags.to, flags.min)
			if err != nil {
				return err
			}
			summary := d.Summary(series.Apply(records, spec))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s — %s\n", d.Title, d.MetricLabel)
			fmt.Fprintf(out, "countries: %d, years: %d\n", summary.Countries, summary.Years)
			if summary.LatestYear != "" {
				fmt.Fprintf(out, "latest (%s): %.0f\n", summary.LatestYear, summary.LatestValue)
				fmt.Fprintf(out, "peak (%s): %.0f\n", summary.PeakYear, summary.PeakValue)
				fmt.Fprintf(out, "trend per year: %+.1f\n", summary.Slope)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newExportCmd() *cobra.Command {
	var flags filterFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export [dashboard]",
		Short: "Write a dashboard's filtered table to a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, records, err := readyDashboard(cmd, args[0])
			if err != nil {
				return err
			}
			spec, err := d.ParseSpec(flags.country, flags.from, flags.to, flags.min)
			if err != nil {
				return err
			}
			headers, rows := d.Table(series.Apply(records, spec))

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			switch strings.ToLower(filepath.Ext(out)) {
			case ".xlsx":
				err = export.WriteXLSX(f, headers, rows)
			default:
				err = export.WriteCSV(f, headers, rows)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(rows), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "table.csv", "Output file (.csv or .xlsx)")
	return cmd
}
