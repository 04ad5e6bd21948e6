// Package export writes finished lead lists to disk for handoff to sales
// tooling. JSON preserves the full lead shape; XLSX flattens it for
// spreadsheet review.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/namekart/lead-gen-deep-research/internal/model"
)

// WriteJSON writes the leads as a pretty-printed JSON file.
func WriteJSON(path string, leads []model.Lead) error {
	payload := model.LeadList{Leads: leads}
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal leads")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return eris.Wrap(err, "export: write json")
	}
	return nil
}

// xlsxHeader is the fixed column set of the spreadsheet export.
var xlsxHeader = []string{"Website", "Tier", "Detailed Summary", "Rationale", "Metadata"}

// WriteXLSX writes the leads as a single-sheet workbook, one row per lead.
func WriteXLSX(path string, leads []model.Lead) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range xlsxHeader {
		header.AddCell().SetString(h)
	}

	for _, lead := range leads {
		row := sheet.AddRow()
		row.AddCell().SetString(lead.Website)
		row.AddCell().SetString(lead.Tier)
		row.AddCell().SetString(lead.DetailedSummary)
		row.AddCell().SetString(lead.Rationale)
		row.AddCell().SetString(flattenMetadata(lead.Metadata))
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}

// Write picks the format from the output path extension. Unknown extensions
// default to JSON.
func Write(path string, leads []model.Lead) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return WriteXLSX(path, leads)
	default:
		return WriteJSON(path, leads)
	}
}

// flattenMetadata renders metadata as stable "key=value" pairs.
func flattenMetadata(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return strings.Join(parts, "; ")
}
