package prompt

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/leadscope/internal/domain/companies"
)

// SystemPrompt gives the model its role and the output shape.
func SystemPrompt() string {
	return `You are a B2B sales researcher preparing a rep for a discovery call. Write plain text only (no markdown headings, no code fences).

Requirements:
- Produce 3 to 5 talking points, one per line, each starting with "- ".
- Tie every point to the company's pain points or tech stack given in the prompt.
- Do not invent facts about the company beyond what is provided.
- Keep each point under 30 words.`
}

// UserPrompt lays out the company's research sheet as the user message.
func UserPrompt(c companies.Company) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", c.Name)
	fmt.Fprintf(&b, "Industry: %s\n", c.Industry)
	fmt.Fprintf(&b, "Size: %s employees\n", c.Size)
	fmt.Fprintf(&b, "Tech stack: %s\n", strings.Join(c.Techs(), ", "))
	fmt.Fprintf(&b, "Pain points: %s\n", c.PainPoints)
	fmt.Fprintf(&b, "Contact: %s\n", c.ContactName)
	b.WriteString("Write the talking points for the call.")
	return b.String()
}
