package companies

import (
	"strings"

	"golang.org/x/text/cases"
)

// PainCategory is a named keyword bucket for pain-point text.
type PainCategory struct {
	Name     string
	Keywords []string
}

// Pain category names.
const (
	PainCompetition = "Competition Pressure"
	PainCompliance  = "Compliance & Regulations"
	PainDataQuality = "Data Accuracy & Quality"
	PainComplexity  = "Technical Complexity"
	PainScalability = "Scalability & Performance"
	PainAdoption    = "Customer/User Adoption"
	PainIntegration = "Integration Challenges"
	PainPrivacy     = "Privacy & Security"
	PainSalesCycles = "Sales Cycles"
)

// PainCategories is the fixed classifier table. Order is the tie-break order
// when ranking. "compliance" deliberately belongs to two buckets.
var PainCategories = []PainCategory{
	{Name: PainCompetition, Keywords: []string{"competing", "competition", "market"}},
	{Name: PainCompliance, Keywords: []string{"compliance", "regulatory", "legal"}},
	{Name: PainDataQuality, Keywords: []string{"accuracy", "data quality", "validation"}},
	{Name: PainComplexity, Keywords: []string{"complexity", "complicated", "workflow"}},
	{Name: PainScalability, Keywords: []string{"scaling", "scale", "performance"}},
	{Name: PainAdoption, Keywords: []string{"adoption", "onboarding", "user retention"}},
	{Name: PainIntegration, Keywords: []string{"integration", "connecting", "api"}},
	{Name: PainPrivacy, Keywords: []string{"privacy", "security", "compliance"}},
	{Name: PainSalesCycles, Keywords: []string{"sales cycles", "enterprise sales"}},
}

// Matches reports whether any keyword occurs in text (case-insensitive).
func (p PainCategory) Matches(text string) bool {
	lower := cases.Fold().String(text)
	for _, kw := range p.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Categorize returns every category name whose keywords occur in text, in
// table order. A text may fall into several categories or none.
func Categorize(text string) []string {
	var out []string
	for _, cat := range PainCategories {
		if cat.Matches(text) {
			out = append(out, cat.Name)
		}
	}
	return out
}
