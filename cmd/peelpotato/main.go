// Package main provides the CLI entry point for peelpotato.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato"
	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/bridge"
	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/models"
	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/parser"
	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/transform"
)

var (
	sheetName  string
	dimSpec    string
	valueSpec  string
	chartType  string
	chartMode  string
	anchorCell string
	outputPath string
	dictPath   string
	refPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "peelpotato",
		Short: "Create and update Excel charts from range expressions",
		Long: `peelpotato inserts charts into Excel workbooks from small range
expressions like "B", "B:C", "B2:B13" or "B,C", and ships the workbook
utilities of the original chart helper (summarize, select, enrich).`,
		SilenceUsage: true,
	}

	chartCmd := &cobra.Command{
		Use:   "chart [input.xlsx]",
		Short: "Create a chart from dim/values range expressions",
		Args:  cobra.ExactArgs(1),
		RunE:  runChart,
	}
	addChartFlags(chartCmd)

	changeCmd := &cobra.Command{
		Use:   "change [input.xlsx]",
		Short: "Rebuild the chart at an anchor cell with new ranges or type",
		Args:  cobra.ExactArgs(1),
		RunE:  runChange,
	}
	addChartFlags(changeCmd)

	pivotCmd := &cobra.Command{
		Use:   "pivot [input.xlsx]",
		Short: "Create a pivot table: dim as row field, value columns summed",
		Args:  cobra.ExactArgs(1),
		RunE:  runPivot,
	}
	pivotCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to pivot from (default: first sheet)")
	pivotCmd.Flags().StringVar(&dimSpec, "dim", "", "Row field range expression, e.g. A")
	pivotCmd.Flags().StringVar(&valueSpec, "values", "", "Summed column range expression, e.g. B:C")
	pivotCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: in place)")

	checkCmd := &cobra.Command{
		Use:   "check [input.xlsx]",
		Short: "Dry-run: resolve range expressions against every sheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	checkCmd.Flags().StringVar(&dimSpec, "dim", "", "Category/X range expression")
	checkCmd.Flags().StringVar(&valueSpec, "values", "", "Value series range expression")

	sumCmd := &cobra.Command{
		Use:   "sum [input.xlsx]",
		Short: "Group by the id column and sum numeric columns into <sheet>_sum",
		Args:  cobra.ExactArgs(1),
		RunE:  runSum,
	}
	sumCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read (default: first sheet)")
	sumCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: in place)")

	slcCmd := &cobra.Command{
		Use:   "slc [input.xlsx]",
		Short: "Select and rename columns via a dictionary workbook into <sheet>_slc",
		Args:  cobra.ExactArgs(1),
		RunE:  runSlc,
	}
	slcCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read (default: first sheet)")
	slcCmd.Flags().StringVar(&dictPath, "dict", "dict.xlsx", "Dictionary workbook with a columnlist sheet")
	slcCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: in place)")

	infoCmd := &cobra.Command{
		Use:   "info [input.xlsx]",
		Short: "Enrich rows from a reference workbook into <sheet>_info",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
	infoCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read (default: first sheet)")
	infoCmd.Flags().StringVar(&refPath, "ref", "emp.xlsx", "Reference workbook with an emp sheet")
	infoCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: in place)")

	rootCmd.AddCommand(chartCmd, changeCmd, pivotCmd, checkCmd, sumCmd, slcCmd, infoCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to chart from (default: first sheet)")
	cmd.Flags().StringVar(&dimSpec, "dim", "", "Category/X range expression, e.g. A or A2:A13")
	cmd.Flags().StringVar(&valueSpec, "values", "", "Value series range expression, e.g. B, B:C or B,C")
	cmd.Flags().StringVar(&chartType, "type", "column", "Chart type: line, bar, column, pie, area, scatter, radar")
	cmd.Flags().StringVar(&chartMode, "mode", "", "Multi-series mode, e.g. clustered, stacked, 100% stacked")
	cmd.Flags().StringVar(&anchorCell, "anchor", "", "Top-left anchor cell for the chart")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: in place)")
}

// openWorkbook validates and opens the input file.
func openWorkbook(path string) (*bridge.Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return bridge.Open(path)
}

// targetSheet returns the --sheet flag or the workbook's first sheet.
func targetSheet(wb *bridge.Workbook) (string, error) {
	if sheetName != "" {
		return sheetName, nil
	}
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	return sheets[0], nil
}

// saveWorkbook writes in place or to --output.
func saveWorkbook(wb *bridge.Workbook) error {
	if outputPath != "" {
		if err := wb.SaveAs(outputPath); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := wb.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// chartInput assembles the shared chart/change input from flags.
func chartInput(sheet string) (peelpotato.ChartInput, error) {
	kind, ok := models.ParseKind(chartType)
	if !ok {
		return peelpotato.ChartInput{}, fmt.Errorf("invalid chart type: %s", chartType)
	}
	mode, ok := models.ParseMode(chartMode, kind)
	if !ok {
		return peelpotato.ChartInput{}, fmt.Errorf("invalid mode: %s", chartMode)
	}
	return peelpotato.ChartInput{
		Sheet:  sheet,
		Dim:    dimSpec,
		Values: valueSpec,
		Kind:   kind,
		Mode:   mode,
		Anchor: anchorCell,
	}, nil
}

func printAdvisories(advisories []parser.Advisory) {
	for _, a := range advisories {
		fmt.Printf("advisory: %s\n", a)
	}
}

func runChart(cmd *cobra.Command, args []string) error {
	wb, err := openWorkbook(args[0])
	if err != nil {
		return err
	}
	defer wb.Close()

	sheet, err := targetSheet(wb)
	if err != nil {
		return err
	}
	in, err := chartInput(sheet)
	if err != nil {
		return err
	}

	svc := peelpotato.NewService(wb, peelpotato.LoadOptions())
	sess := peelpotato.NewSession()
	res, err := svc.CreateChart(sess, in)
	if err != nil {
		return fmt.Errorf("chart creation failed: %w", err)
	}
	printAdvisories(res.Advisories)

	if err := saveWorkbook(wb); err != nil {
		return err
	}
	fmt.Printf("Created %s chart at %s (%d series)\n", res.Request.Kind, res.Anchor, len(res.Request.Series))
	return nil
}

func runChange(cmd *cobra.Command, args []string) error {
	if anchorCell == "" {
		return fmt.Errorf("change needs --anchor (the cell the chart was created at)")
	}
	wb, err := openWorkbook(args[0])
	if err != nil {
		return err
	}
	defer wb.Close()

	sheet, err := targetSheet(wb)
	if err != nil {
		return err
	}
	in, err := chartInput(sheet)
	if err != nil {
		return err
	}

	svc := peelpotato.NewService(wb, peelpotato.LoadOptions())
	// Re-seat the session on the chart created by a prior run.
	sess := peelpotato.NewSession()
	sess.Remember(models.ChartAnchor{Sheet: sheet, Cell: anchorCell})

	res, err := svc.ChangeChart(sess, in)
	if err != nil {
		return fmt.Errorf("chart change failed: %w", err)
	}
	printAdvisories(res.Advisories)

	if err := saveWorkbook(wb); err != nil {
		return err
	}
	fmt.Printf("Changed chart at %s to %s (%d series)\n", res.Anchor, res.Request.Kind, len(res.Request.Series))
	return nil
}

func runPivot(cmd *cobra.Command, args []string) error {
	wb, err := openWorkbook(args[0])
	if err != nil {
		return err
	}
	defer wb.Close()

	sheet, err := targetSheet(wb)
	if err != nil {
		return err
	}
	svc := peelpotato.NewService(wb, peelpotato.LoadOptions())
	res, err := svc.CreatePivot(peelpotato.PivotInput{
		Sheet:  sheet,
		Dim:    dimSpec,
		Values: valueSpec,
	})
	if err != nil {
		return fmt.Errorf("pivot creation failed: %w", err)
	}
	printAdvisories(res.Advisories)

	if err := saveWorkbook(wb); err != nil {
		return err
	}
	fmt.Printf("Created pivot table at %s (%d data fields)\n", res.Destination, len(res.DataFields))
	return nil
}

// checkResult is one sheet's dry-run outcome.
type checkResult struct {
	sheet  string
	ranges []models.ResolvedRange
	advice []parser.Advisory
	err    error
}

func runCheck(cmd *cobra.Command, args []string) error {
	if dimSpec == "" && valueSpec == "" {
		return fmt.Errorf("check needs --dim and/or --values")
	}
	wb, err := openWorkbook(args[0])
	if err != nil {
		return err
	}
	defer wb.Close()

	sheets := wb.Sheets()
	// Extents are read up front; resolution itself is pure and fans
	// out across sheets.
	extents := make(map[string]models.UsedExtent, len(sheets))
	for _, sheet := range sheets {
		ext, err := wb.UsedExtent(sheet)
		if err != nil {
			return err
		}
		extents[sheet] = ext
	}

	opts := peelpotato.LoadOptions()
	results := make([]checkResult, len(sheets))
	var g errgroup.Group
	for i, sheet := range sheets {
		g.Go(func() error {
			results[i] = resolveSheet(sheet, extents[sheet], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failures := 0
	for _, r := range results {
		if r.err != nil {
			failures++
			fmt.Printf("%s: %v\n", r.sheet, r.err)
			continue
		}
		fmt.Printf("%s: %d range(s)\n", r.sheet, len(r.ranges))
		for _, rr := range r.ranges {
			fmt.Printf("  %s\n", rr)
		}
		printAdvisories(r.advice)
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d sheets failed resolution", failures, len(sheets))
	}
	return nil
}

func resolveSheet(sheet string, ext models.UsedExtent, opts peelpotato.Options) checkResult {
	popts := parser.Options{
		Sheet:         sheet,
		ExcludeHeader: opts.ShouldExcludeHeader(),
		AdvisoryRows:  opts.AdvisoryRows,
	}
	res := checkResult{sheet: sheet}
	for _, spec := range []string{dimSpec, valueSpec} {
		if spec == "" {
			continue
		}
		resolved, err := parser.Resolve(spec, ext, popts)
		if err != nil {
			res.err = err
			return res
		}
		res.ranges = append(res.ranges, resolved.Ranges...)
		res.advice = append(res.advice, resolved.Advisories...)
	}
	return res
}

func runSum(cmd *cobra.Command, args []string) error {
	return runTransform(args[0], func(wb *bridge.Workbook, sheet string) (string, error) {
		return transform.Summarize(wb, sheet)
	})
}

func runSlc(cmd *cobra.Command, args []string) error {
	return runTransform(args[0], func(wb *bridge.Workbook, sheet string) (string, error) {
		return transform.SelectColumns(wb, sheet, dictPath)
	})
}

func runInfo(cmd *cobra.Command, args []string) error {
	return runTransform(args[0], func(wb *bridge.Workbook, sheet string) (string, error) {
		return transform.Enrich(wb, sheet, refPath)
	})
}

func runTransform(path string, fn func(*bridge.Workbook, string) (string, error)) error {
	wb, err := openWorkbook(path)
	if err != nil {
		return err
	}
	defer wb.Close()

	sheet, err := targetSheet(wb)
	if err != nil {
		return err
	}
	created, err := fn(wb, sheet)
	if err != nil {
		return err
	}
	if err := saveWorkbook(wb); err != nil {
		return err
	}
	fmt.Printf("Created sheet %s\n", created)
	return nil
}
