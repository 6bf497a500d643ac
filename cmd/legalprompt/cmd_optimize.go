package main

import (
	"fmt"
	"os"
	"strings"

	"legalprompt-backend/models"
	"legalprompt-backend/service"

	"github.com/spf13/cobra"
)

var optimizeFlags struct {
	componentFlags
	mode   string
	format string
	preset string
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize prompt components with a mode or practice preset",
	RunE:  runOptimize,
}

var compareFlags struct {
	componentFlags
	modes  string
	format string
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Optimize with several modes and recommend one",
	RunE:  runCompare,
}

var exportFlags struct {
	componentFlags
	mode   string
	format string
	out    string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Optimize and export as json, markdown or text",
	RunE:  runExport,
}

func init() {
	optimizeFlags.bind(optimizeCmd)
	f := optimizeCmd.Flags()
	f.StringVar(&optimizeFlags.mode, "mode", string(models.ModeCRISPE), "Optimization mode")
	f.StringVar(&optimizeFlags.format, "format", string(models.FormatLegalOpinion), "Output format")
	f.StringVar(&optimizeFlags.preset, "preset", "", "Practice preset (overrides --mode and --format)")

	compareFlags.bind(compareCmd)
	f = compareCmd.Flags()
	f.StringVar(&compareFlags.modes, "modes", "", "Comma-separated modes (default CRISPE, CO_STAR, CHAIN_OF_THOUGHT, HYBRID_LEGAL)")
	f.StringVar(&compareFlags.format, "format", string(models.FormatLegalOpinion), "Output format")

	exportFlags.bind(exportCmd)
	f = exportCmd.Flags()
	f.StringVar(&exportFlags.mode, "mode", string(models.ModeCRISPE), "Optimization mode")
	f.StringVar(&exportFlags.format, "format", "markdown", "Export format: json, markdown or text")
	f.StringVarP(&exportFlags.out, "out", "o", "", "Write the export to a file instead of stdout")
}

func newOptimizer() (*service.OptimizerService, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	return service.NewOptimizerService(
		service.OptimizerWithCatalog(cat),
		service.OptimizerWithLogger(newLogger()),
	), nil
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	opt, err := newOptimizer()
	if err != nil {
		return err
	}

	var result service.OptimizeResult
	if optimizeFlags.preset != "" {
		result, err = opt.OptimizeWithPreset(service.PresetRequest{
			Components: optimizeFlags.components(),
			Preset:     optimizeFlags.preset,
		})
		if err != nil {
			return err
		}
	} else {
		mode, _ := models.ParseMode(optimizeFlags.mode)
		format, _ := models.ParseOutputFormat(optimizeFlags.format)
		result = opt.Optimize(service.OptimizeRequest{
			Components: optimizeFlags.components(),
			Mode:       mode,
			Format:     format,
		})
	}

	errOut := cmd.ErrOrStderr()
	if result.IsFallback() {
		fmt.Fprintf(errOut, "note: %q not recognised, used %s\n", firstNonEmpty(optimizeFlags.preset, string(result.Requested)), result.Applied.DisplayName())
	}
	fmt.Fprintf(errOut, "Mode: %s  Quality: %d/100  Tokens: ~%d\n",
		result.Applied.DisplayName(), result.Prompt.QualityScore, result.Prompt.TokenEstimate)
	if result.Prompt.PracticeArea != "" {
		fmt.Fprintf(errOut, "Practice area: %s\n", result.Prompt.PracticeArea)
	}
	return printMarkdown(cmd.OutOrStdout(), result.Prompt.Optimized)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	opt, err := newOptimizer()
	if err != nil {
		return err
	}

	var modes []models.Mode
	for _, m := range splitList(compareFlags.modes) {
		mode, _ := models.ParseMode(m)
		modes = append(modes, mode)
	}
	format, _ := models.ParseOutputFormat(compareFlags.format)

	cmp := opt.CompareModes(service.CompareRequest{
		Components: compareFlags.components(),
		Modes:      modes,
		Format:     format,
	})

	var b strings.Builder
	b.WriteString("| Mode | Quality | Tokens |\n|---|---|---|\n")
	for _, c := range cmp.Comparisons {
		fmt.Fprintf(&b, "| %s | %d | %d |\n", c.Name, c.Result.QualityScore, c.Result.TokenEstimate)
	}
	fmt.Fprintf(&b, "\n**Recommended:** %s\n\n%s\n", cmp.RecommendedMode.DisplayName(), cmp.RecommendationReason)
	return printMarkdown(cmd.OutOrStdout(), b.String())
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := service.ParseExportFormat(exportFlags.format)
	if err != nil {
		return err
	}
	opt, err := newOptimizer()
	if err != nil {
		return err
	}

	mode, _ := models.ParseMode(exportFlags.mode)
	result := opt.Optimize(service.OptimizeRequest{Components: exportFlags.components(), Mode: mode})

	content, err := service.NewExportService().Render(format, result.Prompt)
	if err != nil {
		return err
	}

	if exportFlags.out != "" {
		if err := os.WriteFile(exportFlags.out, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s export to %s\n", format, exportFlags.out)
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), content)
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
