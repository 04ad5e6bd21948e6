package leadgen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// defaultMaxKeywords bounds the expanded keyword set sent to the
// keyword-matching service; every keyword has downstream API cost.
const defaultMaxKeywords = 80

// jsonTopTierPrefix marks the machine-readable top-tier keyword line the
// generation prompt asks for. Parsing prefers this over the prose sections.
const jsonTopTierPrefix = "JSON_TOP_TIER:"

// keywordGenPrompt asks the model for tiered keyword families around the
// domain's subject. Only the top tier feeds the lookup; the other families
// push the model to separate strong candidates from noise.
func keywordGenPrompt(domainName, subject string) string {
	return fmt.Sprintf(`You generate search keywords for finding companies that operate on domains similar to %q.

Starting from the subject %q, produce keyword families in these groups:
- Top Tier: the strongest exact-market phrases (the subject itself, close synonyms, and the most commercially relevant variants)
- Geographic: the subject combined with relevant places
- Niche: narrower specializations of the subject
- Brand: coined brandable combinations
- Marketing: campaign-style phrases
- Abbreviations: plausible short forms
- Defensive misspellings: common typos of the subject

Format each group as a heading followed by "* " bullet items. A bullet may carry a short parenthetical note.

Finally, output one line starting with exactly %q followed by a JSON array of the Top Tier keywords, e.g.:
%s ["covert camera", "hidden camera", "spy camera"]`, domainName, subject, jsonTopTierPrefix, jsonTopTierPrefix)
}

// parseTopTier extracts the top-tier keyword list from model output.
// Priority: the JSON_TOP_TIER machine line, then the bulleted "Top Tier"
// section, then nothing (caller falls back to the subject label).
func parseTopTier(text string) []string {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(line, jsonTopTierPrefix) {
			continue
		}
		var parsed []string
		payload := strings.TrimSpace(strings.TrimPrefix(line, jsonTopTierPrefix))
		if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
			break
		}
		keywords := make([]string, 0, len(parsed))
		for _, k := range parsed {
			if strings.TrimSpace(k) != "" {
				keywords = append(keywords, k)
			}
		}
		if len(keywords) > 0 {
			return keywords
		}
		break
	}

	return parseTopTierBullets(text)
}

// parseTopTierBullets parses only the "Top Tier" bulleted section, stopping
// at the first non-bullet line after the heading. Parenthetical notes on a
// bullet are stripped.
func parseTopTierBullets(text string) []string {
	var keywords []string
	inSection := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if !inSection {
			lower := strings.ToLower(line)
			if strings.Contains(lower, "top tier") {
				inSection = true
			}
			continue
		}
		if !strings.HasPrefix(line, "* ") {
			break
		}
		item := strings.TrimSpace(line[2:])
		if i := strings.Index(item, "("); i >= 0 {
			item = strings.TrimSpace(item[:i])
		}
		if item != "" {
			keywords = append(keywords, item)
		}
	}
	return keywords
}

// expandKeywords turns accepted phrases into lookup-ready variants: a single
// token is kept as-is; a multi-word phrase contributes its hyphenated form
// (never the spaced form) plus the compact no-separator form. The combined
// set is de-duplicated in order and truncated to max. An empty phrase list
// falls back to the bare subject label.
func expandKeywords(phrases []string, subject string, max int) []string {
	if max <= 0 {
		max = defaultMaxKeywords
	}
	if len(phrases) == 0 && subject != "" {
		phrases = []string{subject}
	}

	var variants []string
	seen := make(map[string]bool)
	add := func(v string) {
		if v != "" && !seen[v] {
			variants = append(variants, v)
			seen[v] = true
		}
	}

	for _, phrase := range phrases {
		base := strings.ToLower(strings.TrimSpace(phrase))
		if base == "" {
			continue
		}
		if !strings.Contains(base, " ") {
			add(base)
		} else {
			add(strings.ReplaceAll(base, " ", "-"))
		}
		compact := strings.NewReplacer(" ", "", "-", "").Replace(base)
		add(compact)
	}

	if len(variants) > max {
		variants = variants[:max]
	}
	return variants
}
