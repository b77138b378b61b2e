// Package news classifies free text for ESG controversy signal. The
// classifier is a pure function over keyword sets: no I/O, no state, so
// batch analysis parallelizes trivially.
package news

import (
	"fmt"
	"strings"

	"esg-screener/internal/models"
	"esg-screener/pkg/utils"
)

// Keyword sets for substring matching. Matching is case-insensitive and
// each keyword counts at most once per text.
var (
	highSeverityKeywords = []string{
		"lawsuit", "fraud", "scandal", "corruption", "bribery",
		"criminal", "indictment", "violation", "fine", "penalty",
		"oil spill", "toxic waste", "child labor", "forced labor",
		"discrimination", "data breach", "recall",
	}

	mediumSeverityKeywords = []string{
		"investigation", "probe", "allegation", "dispute", "complaint",
		"controversy", "protest", "strike", "boycott", "layoff",
		"emission", "pollution", "contamination", "whistleblower",
		"settlement", "misconduct",
	}

	lowSeverityKeywords = []string{
		"concern", "criticism", "scrutiny", "question", "pressure",
		"risk", "warning", "delay", "shortfall", "downgrade",
	}

	environmentalKeywords = []string{
		"environment", "climate", "carbon", "emission", "pollution",
		"spill", "deforestation", "waste", "renewable", "biodiversity",
		"greenhouse", "contamination",
	}

	socialKeywords = []string{
		"labor", "worker", "employee", "discrimination", "diversity",
		"safety", "community", "human rights", "privacy", "harassment",
		"wage", "union",
	}

	governanceKeywords = []string{
		"board", "executive", "compensation", "shareholder", "audit",
		"disclosure", "corruption", "bribery", "insider", "accounting",
		"transparency", "governance",
	}

	positiveKeywords = []string{
		"award", "achievement", "milestone", "sustainab", "improvement",
		"initiative", "commitment", "progress", "pledge", "donation",
		"recognition", "certified", "renewable investment",
	}
)

// Classifier scores text against the controversy keyword sets.
type Classifier struct{}

// NewClassifier returns a ready classifier. It carries no state.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Analyze classifies a single text. Pure: the same text always yields
// the same analysis.
func (c *Classifier) Analyze(text string) models.ControversyAnalysis {
	lower := strings.ToLower(text)

	var matched []string
	seen := make(map[string]bool)
	count := func(keywords []string) int {
		n := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				n++
				if !seen[kw] {
					seen[kw] = true
					matched = append(matched, kw)
				}
			}
		}
		return n
	}

	highHits := count(highSeverityKeywords)
	mediumHits := count(mediumSeverityKeywords)
	lowHits := count(lowSeverityKeywords)

	envHits := count(environmentalKeywords)
	socialHits := count(socialKeywords)
	govHits := count(governanceKeywords)
	domainHits := envHits + socialHits + govHits

	positiveHits := countOnly(lower, positiveKeywords)

	score := float64(highHits)*3 + float64(mediumHits)*2 + float64(lowHits)*1 +
		float64(domainHits)*1.5 - float64(positiveHits)

	severity := models.SeverityLow
	switch {
	case highHits > 0 || score >= 6:
		severity = models.SeverityHigh
	case mediumHits > 0 || score >= 3:
		severity = models.SeverityMedium
	}

	category := dominantCategory(envHits, socialHits, govHits)
	confidence := utils.Clamp(score/10, 0, 1)
	controversial := score >= 1 && positiveHits < highHits+mediumHits

	return models.ControversyAnalysis{
		IsControversial: controversial,
		Severity:        severity,
		Category:        category,
		Confidence:      confidence,
		MatchedKeywords: matched,
		Summary:         summarize(controversial, severity, category, len(matched)),
	}
}

// AnalyzeBatch applies Analyze element-wise. Output order matches input.
func (c *Classifier) AnalyzeBatch(texts []string) []models.ControversyAnalysis {
	out := make([]models.ControversyAnalysis, len(texts))
	for i, text := range texts {
		out[i] = c.Analyze(text)
	}
	return out
}

func countOnly(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

// dominantCategory picks the domain with the most hits. Zero hits
// everywhere or a three-way tie carries no signal and maps to general.
// A two-way tie resolves in environmental, social, governance order.
func dominantCategory(env, social, gov int) models.Category {
	if env == social && social == gov {
		return models.CategoryGeneral
	}
	switch {
	case env >= social && env >= gov:
		return models.CategoryEnvironmental
	case social >= gov:
		return models.CategorySocial
	default:
		return models.CategoryGovernance
	}
}

func summarize(controversial bool, severity models.Severity, category models.Category, matches int) string {
	if !controversial {
		return "No significant controversy signal detected"
	}
	return fmt.Sprintf("Detected %s-severity %s controversy signal (%d keyword matches)", severity, category, matches)
}
