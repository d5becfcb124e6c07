package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/redact-flow/internal/cli"
	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/Veraticus/redact-flow/internal/policy"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List redactable categories and use cases",
		Long:  `Display every category of personal information the service can redact, and the use cases that keep some of them visible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

			fmt.Fprintln(out, cli.FormatTitle("Categories"))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("Key"), headerStyle.Render("Name"))
			fmt.Fprintf(w, "%s\t%s\n", strings.Repeat("-", 18), strings.Repeat("-", 20))
			for _, c := range model.Categories() {
				fmt.Fprintf(w, "%s\t%s\n", c, c.Label())
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to write categories: %w", err)
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, cli.FormatTitle("Use cases"))
			w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\n", headerStyle.Render("Key"), headerStyle.Render("Name"), headerStyle.Render("Keeps visible"))
			fmt.Fprintf(w, "%s\t%s\t%s\n", strings.Repeat("-", 22), strings.Repeat("-", 30), strings.Repeat("-", 30))
			for _, uc := range model.UseCases() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", uc, uc.Label(), keepsVisible(uc))
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to write use cases: %w", err)
			}
			return nil
		},
	}
}

func keepsVisible(uc model.UseCase) string {
	if uc == model.UseCaseUnclassified {
		return cli.SubtleStyle.Render("(decided from the file name)")
	}
	exempt := policy.Exemptions(uc)
	names := make([]string, len(exempt))
	for i, c := range exempt {
		names[i] = c.Label()
	}
	return strings.Join(names, ", ")
}
