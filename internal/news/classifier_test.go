package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esg-screener/internal/models"
)

func TestLawsuitIsHighSeverityControversy(t *testing.T) {
	c := NewClassifier()

	a := c.Analyze("The company faces a lawsuit over its business practices")
	assert.True(t, a.IsControversial)
	assert.Equal(t, models.SeverityHigh, a.Severity)
	assert.Contains(t, a.MatchedKeywords, "lawsuit")
}

func TestAwardAloneIsNotControversial(t *testing.T) {
	c := NewClassifier()

	a := c.Analyze("The company received an award for excellence")
	assert.False(t, a.IsControversial)
	assert.Equal(t, models.SeverityLow, a.Severity)
}

func TestEmptyTextIsClean(t *testing.T) {
	c := NewClassifier()

	a := c.Analyze("")
	assert.False(t, a.IsControversial)
	assert.Equal(t, models.SeverityLow, a.Severity)
	assert.Equal(t, models.CategoryGeneral, a.Category)
	assert.Zero(t, a.Confidence)
	assert.Empty(t, a.MatchedKeywords)
}

func TestCategoryFollowsDominantDomain(t *testing.T) {
	c := NewClassifier()

	env := c.Analyze("carbon emission and pollution levels at the plant draw regulators")
	assert.Equal(t, models.CategoryEnvironmental, env.Category)

	gov := c.Analyze("board members under fire over audit and disclosure gaps")
	assert.Equal(t, models.CategoryGovernance, gov.Category)

	social := c.Analyze("worker safety and wage disputes spread across sites")
	assert.Equal(t, models.CategorySocial, social.Category)
}

func TestCategoryGeneralOnTieOrNoDomainHits(t *testing.T) {
	c := NewClassifier()

	noDomain := c.Analyze("a lawsuit was filed yesterday")
	assert.Equal(t, models.CategoryGeneral, noDomain.Category)

	tie := c.Analyze("climate, labor and board topics each came up once")
	assert.Equal(t, models.CategoryGeneral, tie.Category)
}

func TestConfidenceIsClamped(t *testing.T) {
	c := NewClassifier()

	loud := c.Analyze("fraud scandal corruption bribery lawsuit across the executive board")
	assert.Equal(t, 1.0, loud.Confidence)

	glowing := c.Analyze("award donation pledge and steady progress on every initiative")
	assert.Equal(t, 0.0, glowing.Confidence)
	assert.False(t, glowing.IsControversial)
}

func TestPositiveFramingSuppressesOnlyWeakSignal(t *testing.T) {
	c := NewClassifier()

	weak := c.Analyze("mild concern noted alongside an award and a major achievement")
	assert.False(t, weak.IsControversial, "strong positive framing drowns a weak signal")

	strong := c.Analyze("fraud lawsuit continues despite an industry award")
	assert.True(t, strong.IsControversial, "one positive term cannot offset two high-severity hits")
	assert.Equal(t, models.SeverityHigh, strong.Severity)
}

func TestMatchedKeywordsDeduplicated(t *testing.T) {
	c := NewClassifier()

	a := c.Analyze("emission emission emission")
	counts := make(map[string]int)
	for _, kw := range a.MatchedKeywords {
		counts[kw]++
	}
	assert.Equal(t, 1, counts["emission"], "a keyword appears at most once in the match list")
}

func TestAnalyzeBatchPreservesOrder(t *testing.T) {
	c := NewClassifier()

	texts := []string{
		"lawsuit filed",
		"award granted",
		"pollution probe opened",
	}
	results := c.AnalyzeBatch(texts)
	require.Len(t, results, 3)
	assert.True(t, results[0].IsControversial)
	assert.False(t, results[1].IsControversial)
	assert.True(t, results[2].IsControversial)
	assert.Equal(t, models.CategoryEnvironmental, results[2].Category)
}
