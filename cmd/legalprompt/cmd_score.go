package main

import (
	"fmt"
	"io"
	"strings"

	"legalprompt-backend/service"

	"github.com/spf13/cobra"
)

var scoreFlags struct {
	componentFlags
	prompt   string
	detailed bool
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a prompt's quality from 0 to 100",
	RunE:  runScore,
}

var detectCmd = &cobra.Command{
	Use:   "detect <text>",
	Short: "Guess the practice area of a matter description",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetect,
}

func init() {
	scoreFlags.bind(scoreCmd)
	f := scoreCmd.Flags()
	f.StringVar(&scoreFlags.prompt, "prompt", "", "Full prompt text to score")
	f.BoolVar(&scoreFlags.detailed, "detailed", false, "Break the score into clarity, specificity, SA context and structure")
}

func runScore(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	components := scoreFlags.components()

	if scoreFlags.detailed {
		d := service.DetailedQualityScore(scoreFlags.prompt, components)
		fmt.Fprintf(out, "Overall:     %d/100\n", d.OverallScore)
		fmt.Fprintf(out, "Clarity:     %d/25\n", d.ClarityScore)
		fmt.Fprintf(out, "Specificity: %d/25\n", d.SpecificityScore)
		fmt.Fprintf(out, "SA context:  %d/25\n", d.SAContextScore)
		fmt.Fprintf(out, "Structure:   %d/25\n", d.StructureScore)
		printList(out, "Strengths", d.Strengths)
		printList(out, "Suggestions", d.Suggestions)
		return nil
	}

	score, suggestions := service.QualityScore(scoreFlags.prompt, components)
	fmt.Fprintf(out, "Quality: %d/100\n", score)
	printList(out, "Suggestions", suggestions)
	return nil
}

func runDetect(cmd *cobra.Command, args []string) error {
	opt, err := newOptimizer()
	if err != nil {
		return err
	}
	det, err := opt.DetectPracticeArea(strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Practice area: %s (confidence %.2f)\n", det.Preset, det.Confidence)
	for _, s := range det.Scores {
		if s.Confidence > 0 {
			fmt.Fprintf(out, "  %-16s %.2f\n", s.Preset, s.Confidence)
		}
	}
	return nil
}

func printList(out io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(out, "  - %s\n", item)
	}
}
