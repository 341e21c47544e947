package companies

import (
	"strings"

	"golang.org/x/text/cases"
)

// ContainsFold reports whether needle occurs in haystack ignoring case.
// An empty needle matches everything.
func ContainsFold(haystack, needle string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(haystack), fold.String(needle))
}

// UsesTech reports whether tech appears anywhere in the tech stack text.
// It matches partial names ("aws" matches "AWS Lambda").
func (c Company) UsesTech(tech string) bool {
	return ContainsFold(c.TechStack, tech)
}

// InIndustry reports whether industry appears in the record's industry.
func (c Company) InIndustry(industry string) bool {
	return ContainsFold(c.Industry, industry)
}

// NameMatches reports whether query appears in the company name.
func (c Company) NameMatches(query string) bool {
	return ContainsFold(c.Name, query)
}

// FindFirst returns the first record whose name contains query.
func FindFirst(records []Company, query string) (Company, bool) {
	for _, c := range records {
		if c.NameMatches(query) {
			return c, true
		}
	}
	return Company{}, false
}

// Filter returns records satisfying keep, in dataset order.
func Filter(records []Company, keep func(Company) bool) []Company {
	out := make([]Company, 0)
	for _, c := range records {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
