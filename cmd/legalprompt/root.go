package main

import (
	"fmt"
	"io"
	"strings"

	"legalprompt-backend/catalog"
	"legalprompt-backend/models"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	raw     bool
	verbose bool
}

var rootCmd = &cobra.Command{
	Use:   "legalprompt",
	Short: "Optimize and score South African legal prompts",
	Long:  "legalprompt turns prompt components into structured prompts for SA legal work,\nscores them, detects the practice area and exports the result.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&rootFlags.raw, "raw", false, "Print Markdown without terminal rendering")
	pf.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.Version = version
}

func newLogger() *zap.Logger {
	if !rootFlags.verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// printMarkdown renders Markdown for the terminal unless --raw is set
func printMarkdown(out io.Writer, md string) error {
	if rootFlags.raw {
		_, err := fmt.Fprintln(out, md)
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

// componentFlags binds the prompt component flags shared by several commands
type componentFlags struct {
	role         string
	context      string
	task         string
	constraints  string
	outputFormat string
	examples     string
}

func (f *componentFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.role, "role", "", "Role or persona for the model")
	fs.StringVar(&f.context, "context", "", "Background facts of the matter")
	fs.StringVar(&f.task, "task", "", "What the model must do")
	fs.StringVar(&f.constraints, "constraints", "", "Limits on the answer")
	fs.StringVar(&f.outputFormat, "output", "", "Desired shape of the answer")
	fs.StringVar(&f.examples, "examples", "", "Examples or precedents")
}

func (f *componentFlags) components() models.Components {
	return models.Components{
		Role:         f.role,
		Context:      f.context,
		Task:         f.task,
		Constraints:  f.constraints,
		OutputFormat: f.outputFormat,
		Examples:     f.examples,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
