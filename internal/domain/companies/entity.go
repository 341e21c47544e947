package companies

import "strings"

// Column names of the company dataset header.
const (
	ColCompany      = "company"
	ColIndustry     = "industry"
	ColSize         = "size"
	ColTechStack    = "tech_stack"
	ColPainPoints   = "pain_points"
	ColContactName  = "contact_name"
	ColContactEmail = "contact_email"
	ColSource       = "source"
)

// Columns lists every dataset column in header order.
var Columns = []string{
	ColCompany,
	ColIndustry,
	ColSize,
	ColTechStack,
	ColPainPoints,
	ColContactName,
	ColContactEmail,
	ColSource,
}

// Company is one record of the dataset. Records are never mutated after load.
type Company struct {
	Name         string `json:"company" yaml:"company" db:"company"`
	Industry     string `json:"industry" yaml:"industry" db:"industry"`
	Size         string `json:"size" yaml:"size" db:"size"`
	TechStack    string `json:"tech_stack" yaml:"tech_stack" db:"tech_stack"`
	PainPoints   string `json:"pain_points" yaml:"pain_points" db:"pain_points"`
	ContactName  string `json:"contact_name" yaml:"contact_name" db:"contact_name"`
	ContactEmail string `json:"contact_email" yaml:"contact_email" db:"contact_email"`
	Source       string `json:"source" yaml:"source" db:"source"`
}

// Techs splits TechStack on commas, trimming whitespace and dropping empty names.
func (c Company) Techs() []string {
	parts := strings.Split(c.TechStack, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FromRow builds a Company from a column->value mapping. Absent keys become "".
func FromRow(row map[string]string) Company {
	return Company{
		Name:         row[ColCompany],
		Industry:     row[ColIndustry],
		Size:         row[ColSize],
		TechStack:    row[ColTechStack],
		PainPoints:   row[ColPainPoints],
		ContactName:  row[ColContactName],
		ContactEmail: row[ColContactEmail],
		Source:       row[ColSource],
	}
}

// Dataset is a fully loaded set of records plus the columns the source provided.
type Dataset struct {
	Columns []string
	Records []Company
}

// Require reports a *MissingColumnError for the first of cols the dataset lacks.
func (d *Dataset) Require(cols ...string) error {
	return RequireColumns(d.Columns, cols...)
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }
