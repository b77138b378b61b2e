package esg

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"

	"esg-screener/internal/models"
)

//go:embed data/curated_esg.csv
var curatedCSV []byte

// curatedRow is the CSV schema of the bundled dataset.
type curatedRow struct {
	Symbol            string  `csv:"symbol"`
	Name              string  `csv:"name"`
	Sector            string  `csv:"sector"`
	Overall           float64 `csv:"overall"`
	Environmental     float64 `csv:"environmental"`
	Social            float64 `csv:"social"`
	Governance        float64 `csv:"governance"`
	Summary           string  `csv:"summary"`
	Controversies     string  `csv:"controversies"`
	CarbonIntensity   float64 `csv:"carbon_intensity"`
	RenewableShare    float64 `csv:"renewable_share"`
	BoardIndependence float64 `csv:"board_independence"`
}

// Profile is one curated ESG record.
type Profile struct {
	Symbol string
	Name   string
	Sector string
	Scores models.ESGScores
	Detail models.CuratedDetail
}

// Dataset is the bundled, hand-maintained set of detailed ESG profiles.
type Dataset struct {
	profiles map[string]*Profile
}

// LoadCuratedDataset parses the embedded CSV.
func LoadCuratedDataset() (*Dataset, error) {
	var rows []curatedRow
	if err := gocsv.UnmarshalBytes(curatedCSV, &rows); err != nil {
		return nil, fmt.Errorf("parsing curated dataset: %w", err)
	}

	ds := &Dataset{profiles: make(map[string]*Profile, len(rows))}
	for _, row := range rows {
		symbol := strings.ToUpper(strings.TrimSpace(row.Symbol))
		if symbol == "" {
			continue
		}

		var controversies []string
		for _, c := range strings.Split(row.Controversies, "|") {
			if c = strings.TrimSpace(c); c != "" {
				controversies = append(controversies, c)
			}
		}

		metrics := map[string]float64{}
		if row.CarbonIntensity > 0 {
			metrics["carbonIntensity"] = row.CarbonIntensity
		}
		if row.RenewableShare > 0 {
			metrics["renewableShare"] = row.RenewableShare
		}
		if row.BoardIndependence > 0 {
			metrics["boardIndependence"] = row.BoardIndependence
		}

		ds.profiles[symbol] = &Profile{
			Symbol: symbol,
			Name:   row.Name,
			Sector: row.Sector,
			Scores: models.ESGScores{
				Overall:       row.Overall,
				Environmental: row.Environmental,
				Social:        row.Social,
				Governance:    row.Governance,
			},
			Detail: models.CuratedDetail{
				Summary:       row.Summary,
				Controversies: controversies,
				ImpactMetrics: metrics,
			},
		}
	}
	return ds, nil
}

// Get returns the curated profile for symbol, case-insensitive.
func (d *Dataset) Get(symbol string) (*Profile, bool) {
	p, ok := d.profiles[strings.ToUpper(strings.TrimSpace(symbol))]
	return p, ok
}

// Len returns the number of curated profiles.
func (d *Dataset) Len() int {
	return len(d.profiles)
}
