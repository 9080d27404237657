// Package commands holds the calculator's extra CLI subcommands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"timecost/services"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

var errUnknownFormat = errors.New("unknown format")

// NewReportCommand returns the "report" command, which runs a local
// spreadsheet through the same pipeline as the web upload.
func NewReportCommand() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Calculate hours and costs for a spreadsheet",
		Long: "Reads an .xlsx, .xls or .csv estimate and prints the per-service " +
			"and project totals, or writes them as an Excel or PDF report.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.OutOrStdout(), args[0], format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: text, xlsx or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (text defaults to stdout, xlsx/pdf to <file>_costos.<format>)")
	return cmd
}

func runReport(w io.Writer, path, format, out string) error {
	format = strings.ToLower(format)
	if format != FormatText && format != FormatXLSX && format != FormatPDF {
		return fmt.Errorf("%w %q: must be text, xlsx or pdf", errUnknownFormat, format)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	report, err := services.ProcessFile(f, filepath.Base(path))
	if err != nil {
		return err
	}

	if format == FormatText {
		if out == "" {
			return WriteText(w, report)
		}
		dest, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		if err := WriteText(dest, report); err != nil {
			dest.Close()
			return err
		}
		return dest.Close()
	}

	var data []byte
	switch format {
	case FormatXLSX:
		data, err = services.GenerateExcel(report)
	case FormatPDF:
		data, err = services.GeneratePDF(report)
	}
	if err != nil {
		return err
	}

	if out == "" {
		out = defaultOutput(path, format)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(w, "%s %s\n", color.GreenString("wrote"), out)
	return nil
}

// defaultOutput places the export next to the input, e.g.
// "estimate_costos.pdf" for "estimate.xlsx".
func defaultOutput(path, format string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_costos." + format
}

// WriteText prints the report as aligned plain-text tables.
func WriteText(w io.Writer, report *services.Report) error {
	title := color.New(color.Bold)

	if report.FileName != "" {
		fmt.Fprintf(w, "Archivo: %s\n\n", report.FileName)
	}
	if len(report.Services) == 0 {
		fmt.Fprintln(w, "No se encontraron servicios con horas asignadas.")
		return nil
	}

	title.Fprintln(w, "Resumen General de Servicios")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Servicio\tN° Perfiles\tTotal Horas\tCosto Base\tCosto Final (15%)")
	for _, row := range services.SummaryRows(report) {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			row.Service,
			row.ProfileCount,
			services.FormatHours(row.TotalHours),
			services.FormatSoles(row.BaseCost),
			services.FormatSoles(row.FinalCost),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, s := range report.Services {
		fmt.Fprintln(w)
		title.Fprintln(w, s.Service)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  Perfil\tHoras\tCosto/Hora\tCosto Total")
		for _, p := range s.ProfilesByHours() {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
				p.Profile,
				services.FormatHours(p.Hours),
				services.FormatSoles(p.HourlyRate),
				services.FormatSoles(p.Cost),
			)
		}
		for _, line := range services.CostBreakdown(s.TotalCost) {
			fmt.Fprintf(tw, "  \t\t%s\t%s\n", line.Concept, services.FormatSoles(line.Amount))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	title.Fprintln(w, "Totales del Proyecto")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total Horas Proyecto\t%s\n", services.FormatHours(report.Totals.TotalHours))
	fmt.Fprintf(tw, "Costo Base Proyecto\t%s\n", services.FormatSoles(report.Totals.TotalCostBase))
	fmt.Fprintf(tw, "Costo Final Proyecto\t%s\n", services.FormatSoles(report.Totals.TotalCostFinal()))
	if err := tw.Flush(); err != nil {
		return err
	}

	if report.SkippedRows > 0 {
		fmt.Fprintf(w, "\nFilas sin servicio omitidas: %d\n", report.SkippedRows)
	}
	for _, name := range report.DroppedServices {
		fmt.Fprintf(w, "Servicio sin horas: %s\n", name)
	}
	return nil
}
