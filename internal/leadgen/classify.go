package leadgen

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/namekart/lead-gen-deep-research/internal/model"
)

// defaultClassificationGuide is the built-in domain classification taxonomy
// used when no personas file overrides it.
const defaultClassificationGuide = `Category 1: Generic keywords - the domain names a product or service a company could sell (e.g. losangelespropertyattorney.com). Target providers of that service in that market and adjacent markets.
Category 2: Informational - the domain suggests monetizable informational content (e.g. howtomakemoney.com). Target publishers, bloggers, advisors.
Category 3: Social reform - activism or call-to-action names. Target large NGOs and CSR programs aligned with the cause.
Category 4: Category killer - the title domain for an entire product category (e.g. contactlense.com). Target category leaders directly.
Category 5: Geographic - city/country and tourism keywords (e.g. lasvegashotel.com). Target travel, tourism, and hospitality companies in and near the location.
Category 6: Product/Service - named after a product or service (e.g. laptop.com). Target makers and sellers of the product and its accessories.
Category 7: Professions - profession names (e.g. lawyer.in, doctor.com). Target firms, practices, and institutions in the profession.
Category 8: Specific - abbreviations, short letter/number names (e.g. db.com, 231.io). Target companies matching the expansion of the name.
Category 9: Brandable - coined two-word combinations (e.g. petfashion.com). Target companies in the implied niche.
Category 10: Marketing campaign - names suited to a promotion or campaign. Target companies that run campaigns related to the name.
Category 11: Miscellaneous - anything else, including misspellings of established names.`

// classifySystemPrompt frames the classification/persona generation call.
const classifySystemPrompt = `You are a domain acquisition and sales strategist. Given a domain name and a classification guide, first classify the domain into one or more guide categories with a short justification, then produce a tiered buyer persona map: "Tier 1" (most relevant, high-probability buyers) down to at most "Tier 4" (broader or indirect buyers), with 3-6 persona types per tier and a short rationale for each. Be concrete: name industries and example company types, not generic labels.`

// supervisorSystemPrompt seeds the research supervisor. The classification
// output is delivered as the accompanying user message.
const supervisorSystemPrompt = `You are a research supervisor specialized in domain brokerage lead generation. Today's date is %s. Using the classification and tiered buyer personas provided, find real companies and organizations with official websites that would be interested in acquiring the domain. Work tier by tier, prioritize Tier 1 personas, and report each candidate with its website and why it fits the personas. Do not invent companies.`

// PersonaTier is one tier of buyer personas in a personas override file.
type PersonaTier struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Personas    []string `yaml:"personas"`
}

// personasFile is the YAML shape of a classification-guide override.
type personasFile struct {
	Guide string        `yaml:"guide"`
	Tiers []PersonaTier `yaml:"tiers"`
}

// LoadClassificationGuide returns the classification guide text, applying
// overrides from the given YAML personas file when path is non-empty.
func LoadClassificationGuide(path string) (string, error) {
	if path == "" {
		return defaultClassificationGuide, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrap(err, "leadgen: read personas file")
	}

	var pf personasFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return "", eris.Wrap(err, "leadgen: parse personas file")
	}

	guide := pf.Guide
	if guide == "" {
		guide = defaultClassificationGuide
	}
	if len(pf.Tiers) == 0 {
		return guide, nil
	}

	var sb strings.Builder
	sb.WriteString(guide)
	sb.WriteString("\n\nPreferred buyer persona tiers:\n")
	for _, tier := range pf.Tiers {
		fmt.Fprintf(&sb, "%s: %s\n", tier.Name, tier.Description)
		for _, p := range tier.Personas {
			fmt.Fprintf(&sb, "  - %s\n", p)
		}
	}
	return sb.String(), nil
}

// classifyPrompt builds the user prompt for the classify-and-seed stage.
func classifyPrompt(guide, domainName string) string {
	return fmt.Sprintf("CLASSIFICATION GUIDE:\n%s\n\nDOMAIN TO CLASSIFY:\n%s", guide, domainName)
}

// seedUpdates returns the state updates for a completed classification:
// classification output recorded, research brief derived from it, and the
// supervisor conversation replaced with a fresh two-message seed.
func seedUpdates(classificationOutput string) []Update {
	system := fmt.Sprintf(supervisorSystemPrompt, time.Now().Format("2006-01-02"))
	return []Update{
		setClassification{output: classificationOutput, brief: classificationOutput},
		setMessages{
			{Role: model.MessageRoleSystem, Content: system},
			{Role: model.MessageRoleUser, Content: classificationOutput},
		},
	}
}
