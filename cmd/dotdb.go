package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/namekart/lead-gen-deep-research/pkg/dotdb"
)

var dotdbKeywords []string

var dotdbCmd = &cobra.Command{
	Use:   "dotdb",
	Short: "Query the DotDB keyword-matching service directly",
	Long:  "Runs a bulk keyword lookup against DotDB and prints the matched active domains per keyword, bypassing classification and validation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := dotdb.NewClient(cfg.DotDB.URL)

		matches, err := client.BulkLeads(cmd.Context(), dotdbKeywords)
		if err != nil {
			return eris.Wrap(err, "dotdb lookup")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	},
}

func init() {
	dotdbCmd.Flags().StringSliceVar(&dotdbKeywords, "keywords", nil, "keywords to look up (required)")
	_ = dotdbCmd.MarkFlagRequired("keywords")
	rootCmd.AddCommand(dotdbCmd)
}
