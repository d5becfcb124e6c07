package main

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/redact-flow/internal/cli"
	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/Veraticus/redact-flow/internal/policy"
	"github.com/Veraticus/redact-flow/internal/selection"
	"github.com/spf13/cobra"
)

func resolveCmd() *cobra.Command {
	var (
		flags    selectionFlags
		filename string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show which categories a use case redacts",
		Long: `Compute the redaction settings for a use case and, for unclassified
documents, a file name. Nothing is sent to the service.`,
		Example: `  redact resolve --use-case identity_verification
  redact resolve --use-case unclassified --file passport_scan.jpg --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := selection.NewStore(policy.New())
			if filename != "" {
				store.SetFiles([]model.PendingFile{{Name: filename}})
			}
			if err := flags.apply(store); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(store.Selection(), "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode selection: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintln(out, cli.RenderBox("Redaction settings", cli.FormatSelection(store.Selection(), store.UseCase())))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&filename, "file", "f", "", "file name used by the unclassified heuristic")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the piiOptions object sent to the service")

	return cmd
}
