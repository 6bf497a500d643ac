package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"legalprompt-backend/service"

	"github.com/spf13/cobra"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List optimization modes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, m := range service.Modes() {
			fmt.Fprintf(w, "%s\t%s\n", m.Key, m.Name)
		}
		return w.Flush()
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List practice-area presets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		opt, err := newOptimizer()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, p := range opt.Presets() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Key, p.Name, p.ModeName)
		}
		return w.Flush()
	},
}

var templatesCategory string

var templatesCmd = &cobra.Command{
	Use:   "templates [name]",
	Short: "List quick templates, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			t, ok := cat.QuickTemplate(args[0])
			if !ok {
				return fmt.Errorf("no template named %q", args[0])
			}
			var b strings.Builder
			fmt.Fprintf(&b, "# %s\n\n%s\n\n**Category:** %s  \n**Recommended mode:** %s\n\n", t.Name, t.Description, t.Category, t.RecommendedMode.DisplayName())
			fmt.Fprintf(&b, "**Role:** %s\n\n**Context:** %s\n\n**Task:** %s\n", t.Components.Role, t.Components.Context, t.Components.Task)
			return printMarkdown(out, b.String())
		}

		templates := cat.QuickTemplates()
		if templatesCategory != "" {
			templates = cat.QuickTemplatesByCategory(templatesCategory)
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, t := range templates {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, t.Category, t.RecommendedMode)
		}
		return w.Flush()
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search frameworks, courts, legislation, prompts, documents and workflows",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		results := cat.Search(strings.Join(args, " "))
		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(out, "[%s] %s\n    %s\n", r.Type, r.Name, r.Description)
		}
		return nil
	},
}

func init() {
	templatesCmd.Flags().StringVar(&templatesCategory, "category", "", "Only list templates in this category")
}
