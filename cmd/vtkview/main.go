package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/vtkview/internal/analysis"
	"github.com/san-kum/vtkview/internal/colormap"
	"github.com/san-kum/vtkview/internal/config"
	"github.com/san-kum/vtkview/internal/export"
	"github.com/san-kum/vtkview/internal/monitoring"
	"github.com/san-kum/vtkview/internal/render"
	"github.com/san-kum/vtkview/internal/sequence"
	"github.com/san-kum/vtkview/internal/session"
	"github.com/san-kum/vtkview/internal/viz"
	"github.com/san-kum/vtkview/internal/vtk"
)

var (
	configFile string
	preset     string
	quiet      bool
	// View settings
	field    string
	cmapName string
	minVal   float64
	maxVal   float64
	autoRng  bool
	theme    string
	profile  bool
	// Output settings
	format   string
	outPath  string
	outDir   string
	cellSize int
	plotW    float64
	plotH    float64
	noLegend bool
	raw      bool
	title    string
	workers  int
	shared   bool
	// Profile and stats
	row    int
	column int
	bins   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "vtkview",
		Short:         "view and export legacy VTK structured-points files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if quiet {
				monitoring.SetLogger(nil)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration (category/name)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress diagnostics")

	viewCmd := &cobra.Command{
		Use:   "view [file]",
		Short: "interactive terminal viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}
	addViewFlags(viewCmd)
	viewCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	viewCmd.Flags().BoolVar(&profile, "profile", false, "show row profile")

	renderCmd := &cobra.Command{
		Use:   "render [file]",
		Short: "render a field to png, svg, pdf, html, csv or json",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	addViewFlags(renderCmd)
	addOutputFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (- for stdout; default next to input)")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "render every file of the sequence containing file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	addViewFlags(batchCmd)
	addOutputFlags(batchCmd)
	batchCmd.Flags().StringVar(&outDir, "out-dir", "", "output directory (default next to inputs)")
	batchCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "concurrent renders")
	batchCmd.Flags().BoolVar(&shared, "shared", false, "use one auto range across the sequence")

	infoCmd := &cobra.Command{
		Use:   "info [file]",
		Short: "show grid, fields and sequence position",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	seqCmd := &cobra.Command{
		Use:   "seq [file]",
		Short: "list the sequence containing file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeq,
	}

	nextCmd := &cobra.Command{
		Use:   "next [file]",
		Short: "print the next file of the sequence",
		Args:  cobra.ExactArgs(1),
		RunE:  adjacent(sequence.Next),
	}

	prevCmd := &cobra.Command{
		Use:   "prev [file]",
		Short: "print the previous file of the sequence",
		Args:  cobra.ExactArgs(1),
		RunE:  adjacent(sequence.Prev),
	}

	profileCmd := &cobra.Command{
		Use:   "profile [file]",
		Short: "plot a row or column cut of a field",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfile,
	}
	profileCmd.Flags().StringVar(&field, "field", "", "scalar field (default first)")
	profileCmd.Flags().IntVar(&row, "row", 0, "row index j")
	profileCmd.Flags().IntVar(&column, "column", -1, "column index i (overrides --row)")

	statsCmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "field statistics and histogram",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}
	statsCmd.Flags().StringVar(&field, "field", "", "scalar field (default all)")
	statsCmd.Flags().IntVar(&bins, "bins", 10, "histogram bins")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [file]",
		Short: "export fields as i,j,value rows",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCSV,
	}
	exportCSVCmd.Flags().StringVar(&field, "field", "", "scalar field (default all)")
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [file]",
		Short: "export grid and fields as json",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportJSON,
	}
	exportJSONCmd.Flags().StringVar(&field, "field", "", "scalar field (default all)")
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	colormapsCmd := &cobra.Command{
		Use:   "colormaps",
		Short: "list colormaps",
		RunE:  listColormaps,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(viewCmd, renderCmd, batchCmd, infoCmd, seqCmd, nextCmd, prevCmd,
		profileCmd, statsCmd, exportCSVCmd, exportJSONCmd, colormapsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&field, "field", "", "scalar field (default first)")
	cmd.Flags().StringVar(&cmapName, "colormap", colormap.Default, "colormap ("+strings.Join(colormap.Names(), ", ")+")")
	cmd.Flags().Float64Var(&minVal, "min", 0, "manual range minimum")
	cmd.Flags().Float64Var(&maxVal, "max", 1, "manual range maximum")
	cmd.Flags().BoolVar(&autoRng, "auto", true, "auto range from field values")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&format, "format", config.DefaultFormat, "output format ("+strings.Join(config.Formats, ", ")+")")
	cmd.Flags().IntVar(&cellSize, "cell", config.DefaultCellSize, "pixels per grid point with --raw")
	cmd.Flags().Float64Var(&plotW, "width", config.DefaultWidth, "plot width (cm)")
	cmd.Flags().Float64Var(&plotH, "height", config.DefaultHeight, "plot height (cm)")
	cmd.Flags().BoolVar(&noLegend, "no-legend", false, "omit the legend")
	cmd.Flags().BoolVar(&raw, "raw", false, "one pixel block per grid point, no axes (png, svg)")
	cmd.Flags().StringVar(&title, "title", "", "plot title (default field name)")
}

// loadConfig builds the effective config: defaults, then preset, then
// config file, then flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		category, name, ok := strings.Cut(preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset must be category/name (categories: %v)", config.ListCategories())
		}
		p := config.GetPreset(category, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(category))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}
	if changed("field") {
		cfg.Field = field
	}
	if changed("colormap") {
		cfg.Colormap = cmapName
	}
	if changed("min") || changed("max") {
		cfg.AutoRange = false
		if changed("min") {
			cfg.Range.Min = minVal
		}
		if changed("max") {
			cfg.Range.Max = maxVal
		}
	}
	if changed("auto") {
		cfg.AutoRange = autoRng
	}
	if changed("theme") {
		cfg.View.Theme = theme
	}
	if changed("profile") {
		cfg.View.Profile = profile
	}
	if changed("format") {
		cfg.Render.Format = format
	}
	if changed("cell") {
		cfg.Render.CellSize = cellSize
	}
	if changed("width") {
		cfg.Render.Width = plotW
	}
	if changed("height") {
		cfg.Render.Height = plotH
	}
	if changed("no-legend") {
		cfg.Render.Legend = !noLegend
	}
	if changed("raw") {
		cfg.Render.Raw = raw
	}
	if changed("title") {
		cfg.Render.Title = title
	}
	if changed("workers") {
		cfg.Batch.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession loads path into a new session configured by cfg. The
// configured field and manual range are applied after the first load; a
// configured field the file lacks is skipped with a warning.
func openSession(path string, cfg *config.Config) (*session.Host, error) {
	s := session.New(session.Options{Colormap: cfg.Colormap, AutoRange: cfg.AutoRange, Range: cfg.Range})
	host := session.NewHost(nil, s)
	if err := host.Open(path); err != nil {
		return nil, err
	}
	if cfg.Field != "" && cfg.Field != s.Field() {
		if s.Grid().HasScalar(cfg.Field) {
			if _, err := s.SelectField(cfg.Field); err != nil {
				return nil, err
			}
		} else {
			monitoring.Logf("field %q not in %s, showing %q", cfg.Field, filepath.Base(path), s.Field())
		}
	}
	if !cfg.AutoRange {
		if _, err := s.ApplyRange(cfg.Range.Min, cfg.Range.Max); err != nil {
			return nil, err
		}
	}
	return host, nil
}

func printMessages(w io.Writer, s *session.Session) {
	for _, m := range s.Messages() {
		fmt.Fprintf(w, "%s: %s\n", m.Type, m.Text)
	}
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	host, err := openSession(args[0], cfg)
	if err != nil {
		return err
	}
	return viz.Run(host, viz.Options{Theme: cfg.View.Theme, Profile: cfg.View.Profile})
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	host, err := openSession(args[0], cfg)
	if err != nil {
		return err
	}
	s := host.Session()
	printMessages(os.Stderr, s)

	dest := outPath
	if dest == "" {
		dest = export.OutputPath(args[0], "", cfg.Render.Format)
	}

	var w io.Writer = os.Stdout
	if dest != "-" {
		file, err := os.Create(dest)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	if err := export.Write(w, s.Grid(), s.Frame(), export.OptionsFromConfig(cfg.Render)); err != nil {
		return fmt.Errorf("render %s: %w", args[0], err)
	}
	if dest != "-" {
		f := s.Frame()
		fmt.Printf("wrote %s (%s, %s, [%s, %s])\n", dest, f.Field, f.Colormap,
			colormap.FormatTick(f.Range.Min), colormap.FormatTick(f.Range.Max))
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files := sequence.NewResolver(nil).All(args[0])
	if len(files) == 0 {
		files = []sequence.Entry{{Name: filepath.Base(args[0]), Path: args[0]}}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b := &export.Batch{
		Field:    cfg.Field,
		Colormap: cfg.Colormap,
		Range:    cfg.ManualRange(),
		Shared:   shared,
		Options:  export.OptionsFromConfig(cfg.Render),
		OutDir:   outDir,
		Workers:  cfg.Batch.Workers,
	}
	results, err := b.Run(ctx, files)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INPUT\tOUTPUT\tFIELD\tRANGE\tSTATUS")
	failed := 0
	for _, r := range results {
		status := "ok"
		if r.FellBack {
			status = "ok (auto range)"
		}
		if r.Err != nil {
			status = r.Err.Error()
			failed++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t[%s, %s]\t%s\n", filepath.Base(r.Input), r.Output, r.Field,
			colormap.FormatTick(r.Range.Min), colormap.FormatTick(r.Range.Max), status)
	}
	w.Flush()

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	g, err := vtk.ParseFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("file:       %s\n", args[0])
	if g.Header != "" {
		fmt.Printf("header:     %s\n", g.Header)
	}
	if g.DatasetType != "" {
		fmt.Printf("dataset:    %s\n", g.DatasetType)
	}
	fmt.Printf("dimensions: %d x %d x %d (%d points)\n", g.NX(), g.NY(), g.NZ(), g.Points())
	fmt.Printf("spacing:    %g %g %g\n", g.Spacing[0], g.Spacing[1], g.Spacing[2])
	fmt.Printf("origin:     %g %g %g\n", g.Origin[0], g.Origin[1], g.Origin[2])

	info := sequence.NewResolver(nil).SequenceInfo(args[0])
	if info.TotalFiles > 0 {
		fmt.Printf("sequence:   %s (%d/%d)\n", info.Pattern, info.CurrentIndex, info.TotalFiles)
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tKIND\tTYPE\tVALUES\tMIN\tMAX")
	for _, name := range g.Fields.ScalarNames() {
		f, _ := g.Scalar(name)
		st := analysis.Summarize(f.Values)
		fmt.Fprintf(w, "%s\tscalar\t%s\t%d\t%g\t%g\n", name, f.DataType, len(f.Values), st.Min, st.Max)
	}
	for _, name := range g.Fields.VectorNames() {
		f, _ := g.Fields.Vector(name)
		fmt.Fprintf(w, "%s\tvector\t%s\t%d\t-\t-\n", name, f.DataType, f.Len())
	}
	w.Flush()

	for _, name := range g.ShortFields() {
		fmt.Printf("warning: field %s holds fewer than %d values\n", name, g.Points())
	}
	return nil
}

func runSeq(cmd *cobra.Command, args []string) error {
	r := sequence.NewResolver(nil)
	files := r.All(args[0])
	if len(files) == 0 {
		fmt.Println("not part of a numbered sequence")
		return nil
	}

	current := filepath.Base(args[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tINDEX\tNUMBER\tFILE")
	for i, f := range files {
		mark := ""
		if f.Name == current {
			mark = ">"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", mark, i+1, f.Digits, f.Name)
	}
	return w.Flush()
}

func adjacent(d sequence.Direction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		p, ok := sequence.NewResolver(nil).Adjacent(args[0], d)
		if !ok {
			fmt.Printf("No %s file found.\n", d)
			return nil
		}
		fmt.Println(p)
		return nil
	}
}

func loadField(path string) (*vtk.Grid, *vtk.ScalarField, error) {
	g, err := vtk.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	name := field
	if name == "" {
		name = g.FirstScalar()
	}
	f, ok := g.Scalar(name)
	if !ok {
		return nil, nil, &render.FieldNotFoundError{Field: name}
	}
	return g, f, nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	g, f, err := loadField(args[0])
	if err != nil {
		return err
	}

	var data []float64
	var caption string
	if column >= 0 {
		data, err = analysis.ColumnProfile(g, f, column)
		caption = fmt.Sprintf("%s along j, i=%d", f.Name, column)
	} else {
		data, err = analysis.RowProfile(g, f, row)
		caption = fmt.Sprintf("%s along i, j=%d", f.Name, row)
	}
	if err != nil {
		return err
	}
	if len(analysis.Finite(data)) < 2 {
		return fmt.Errorf("profile has fewer than two finite values")
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	g, err := vtk.ParseFile(args[0])
	if err != nil {
		return err
	}
	names := g.Fields.ScalarNames()
	if field != "" {
		if !g.HasScalar(field) {
			return &render.FieldNotFoundError{Field: field}
		}
		names = []string{field}
	}

	for _, name := range names {
		f, _ := g.Scalar(name)
		st := analysis.Summarize(f.Values)

		fmt.Printf("%s\n", name)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  count\t%d\n", st.Count)
		fmt.Fprintf(w, "  finite\t%d\n", st.Finite)
		fmt.Fprintf(w, "  non-finite\t%d\n", st.NonFinite)
		fmt.Fprintf(w, "  min\t%g\n", st.Min)
		fmt.Fprintf(w, "  max\t%g\n", st.Max)
		fmt.Fprintf(w, "  mean\t%g\n", st.Mean)
		fmt.Fprintf(w, "  std dev\t%g\n", st.StdDev)
		fmt.Fprintf(w, "  median\t%g\n", st.Median)
		w.Flush()

		h, err := analysis.NewHistogram(f.Values, bins, nil)
		if err != nil {
			return err
		}
		peak := h.Counts[h.Peak()]
		for i, c := range h.Counts {
			bar := 0
			if peak > 0 {
				bar = c * 40 / peak
			}
			fmt.Printf("  [%10.4g, %10.4g) %6d %s\n", h.Edges[i], h.Edges[i+1], c, strings.Repeat("█", bar))
		}
		fmt.Println()
	}
	return nil
}

func fieldNames() []string {
	if field == "" {
		return nil
	}
	return []string{field}
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	g, err := vtk.ParseFile(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return export.WriteCSV(os.Stdout, g, fieldNames()...)
	}
	if err := export.ExportCSV(outPath, g, fieldNames()...); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	g, err := vtk.ParseFile(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return export.WriteJSON(os.Stdout, g, fieldNames()...)
	}
	if err := export.ExportJSON(outPath, g, fieldNames()...); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func listColormaps(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMIN\tMID\tMAX")
	for _, name := range colormap.Names() {
		interp := colormap.Lookup(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, colormap.Hex(interp(0)), colormap.Hex(interp(0.5)), colormap.Hex(interp(1)))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCOLORMAP\tFIELD\tRANGE\tFORMAT")
	for _, category := range config.ListCategories() {
		for _, name := range config.ListPresets(category) {
			p := config.GetPreset(category, name)
			rng := "auto"
			if !p.AutoRange {
				rng = fmt.Sprintf("[%g, %g]", p.Range.Min, p.Range.Max)
			}
			fld := p.Field
			if fld == "" {
				fld = "-"
			}
			fmt.Fprintf(w, "%s/%s\t%s\t%s\t%s\t%s\n", category, name, p.Colormap, fld, rng, p.Render.Format)
		}
	}
	return w.Flush()
}
