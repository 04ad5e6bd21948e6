package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/namekart/lead-gen-deep-research/internal/domainkey"
	"github.com/namekart/lead-gen-deep-research/internal/export"
	"github.com/namekart/lead-gen-deep-research/internal/model"
	"github.com/namekart/lead-gen-deep-research/pkg/tracxn"
)

var (
	runDomain string
	runOutput string
	runEnrich bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run lead generation for a single domain",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv(cfg)
		if err != nil {
			return err
		}

		state, err := e.engine.Run(ctx, runDomain)
		if err != nil {
			return eris.Wrap(err, "run lead generation")
		}

		leads := state.Leads
		if runEnrich {
			leads = enrichLeads(ctx, tracxn.NewClient(cfg.Scraper.URL), leads)
		}

		if runOutput != "" {
			if err := export.Write(runOutput, leads); err != nil {
				return err
			}
			zap.L().Info("leads written",
				zap.String("path", runOutput),
				zap.Int("leads", len(leads)),
			)
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(model.LeadList{Leads: leads})
	},
}

// enrichLeads attaches third-party company info to each lead's metadata.
// Lookups that fail or return nothing leave the lead untouched.
func enrichLeads(ctx context.Context, client tracxn.Client, leads []model.Lead) []model.Lead {
	for i, lead := range leads {
		domain := domainkey.Canonicalize(lead.Website)
		if domain == "" {
			continue
		}

		info, err := client.CompanyInfo(ctx, domain)
		if err != nil {
			zap.L().Warn("company info lookup failed",
				zap.String("domain", domain),
				zap.Error(err),
			)
			continue
		}
		if info == nil {
			continue
		}

		if leads[i].Metadata == nil {
			leads[i].Metadata = make(map[string]any)
		}
		leads[i].Metadata["company_info"] = info
	}
	return leads
}

func init() {
	runCmd.Flags().StringVar(&runDomain, "domain", "", "domain name to generate leads for (required)")
	runCmd.Flags().StringVar(&runOutput, "output", "", "output file (.json or .xlsx); defaults to stdout JSON")
	runCmd.Flags().BoolVar(&runEnrich, "enrich", false, "enrich leads with company info from the scraper service")
	_ = runCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(runCmd)
}
