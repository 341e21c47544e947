package reports

import "github.com/bryanwahyu/leadscope/internal/domain/companies"

// IndustryShare is one line of the industry distribution.
type IndustryShare struct {
	Industry   string  `json:"industry"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TechCount is a technology and how many records of an industry list it.
type TechCount struct {
	Tech  string `json:"tech"`
	Count int    `json:"count"`
}

// IndustryTechnologies holds the top technologies of one industry.
type IndustryTechnologies struct {
	Industry string      `json:"industry"`
	Top      []TechCount `json:"top"`
}

// IndustryAnalysis is returned by AnalyzeIndustries. The zero value is the
// empty result used when the dataset is missing.
type IndustryAnalysis struct {
	Total           int                       `json:"total"`
	IndustryCounts  map[string]int            `json:"industry_counts"`
	IndustryTech    map[string]map[string]int `json:"industry_tech"`
	Distribution    []IndustryShare           `json:"distribution"`
	TopTechnologies []IndustryTechnologies    `json:"top_technologies"`
}

// CategoryShare is one line of the pain point ranking.
type CategoryShare struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PainPointAnalysis is returned by AnalyzePainPoints. Counts carries every
// category, including those with zero matches; Ranking only non-zero ones.
type PainPointAnalysis struct {
	Total   int             `json:"total"`
	Counts  map[string]int  `json:"counts"`
	Ranking []CategoryShare `json:"ranking"`
}

// Research is returned by ResearchReport for a matched company.
type Research struct {
	Company       companies.Company `json:"company"`
	TalkingPoints string            `json:"talking_points,omitempty"`
}

// ResearchOptions tunes ResearchReport.
type ResearchOptions struct {
	// Brief asks the configured Briefer for talking points.
	Brief bool
}
