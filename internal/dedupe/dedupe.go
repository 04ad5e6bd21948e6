// Package dedupe reconciles leads from multiple discovery paths into a
// single list with one lead per canonical domain key.
package dedupe

import (
	"github.com/namekart/lead-gen-deep-research/internal/domainkey"
	"github.com/namekart/lead-gen-deep-research/internal/model"
)

// merge selects the surviving lead of two that share a canonical key, where a
// was encountered before b. Fields are never blended: precedence is longer
// detailed summary, then non-empty metadata, then first seen. Tier is not
// consulted, so the outcome depends only on the original append order.
func merge(a, b model.Lead) model.Lead {
	if len(b.DetailedSummary) > len(a.DetailedSummary) {
		return b
	}
	if len(b.DetailedSummary) < len(a.DetailedSummary) {
		return a
	}
	if len(a.Metadata) == 0 && len(b.Metadata) > 0 {
		return b
	}
	return a
}

// Dedupe folds the merge policy left-to-right over leads, keyed by the
// canonical domain of each lead's website. Output preserves first-seen key
// order. Dedupe is idempotent: applying it to its own output is a no-op,
// which lets the engine re-run it after a serialize/deserialize boundary.
func Dedupe(leads []model.Lead) []model.Lead {
	if len(leads) == 0 {
		return nil
	}

	byKey := make(map[string]model.Lead, len(leads))
	order := make([]string, 0, len(leads))

	for _, lead := range leads {
		key := domainkey.Canonicalize(lead.Website)
		prev, seen := byKey[key]
		if !seen {
			byKey[key] = lead
			order = append(order, key)
			continue
		}
		byKey[key] = merge(prev, lead)
	}

	out := make([]model.Lead, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out
}
