package news

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"esg-screener/internal/models"
)

func TestClassifierProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)
	c := NewClassifier()

	properties.Property("confidence always lands in [0,1]", prop.ForAll(
		func(text string) bool {
			a := c.Analyze(text)
			return a.Confidence >= 0 && a.Confidence <= 1
		},
		gen.AnyString(),
	))

	properties.Property("severity and category stay within their enums", prop.ForAll(
		func(text string) bool {
			a := c.Analyze(text)
			okSeverity := a.Severity == models.SeverityLow ||
				a.Severity == models.SeverityMedium ||
				a.Severity == models.SeverityHigh
			okCategory := a.Category == models.CategoryEnvironmental ||
				a.Category == models.CategorySocial ||
				a.Category == models.CategoryGovernance ||
				a.Category == models.CategoryGeneral
			return okSeverity && okCategory
		},
		gen.AnyString(),
	))

	properties.Property("analysis is deterministic", prop.ForAll(
		func(text string) bool {
			first := c.Analyze(text)
			second := c.Analyze(text)
			return first.IsControversial == second.IsControversial &&
				first.Severity == second.Severity &&
				first.Category == second.Category &&
				first.Confidence == second.Confidence
		},
		gen.AnyString(),
	))

	properties.Property("batch equals element-wise analysis", prop.ForAll(
		func(texts []string) bool {
			batch := c.AnalyzeBatch(texts)
			if len(batch) != len(texts) {
				return false
			}
			for i, text := range texts {
				if batch[i].Severity != c.Analyze(text).Severity {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.TestingRun(t)
}
