package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const painPreviewRunes = 60

// printer writes report text. Titles are styled through a renderer bound to
// the writer, so buffers and pipes receive plain text.
type printer struct {
	w     io.Writer
	title lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:     w,
		title: r.NewStyle().Bold(true),
	}
}

func (p *printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) blank() {
	fmt.Fprintln(p.w)
}

// heading prints one styled line. s must not contain newlines; lipgloss pads
// multi-line blocks to equal width.
func (p *printer) heading(s string) {
	fmt.Fprintln(p.w, p.title.Render(s))
}

func (p *printer) rule(ch string, n int) {
	p.println(strings.Repeat(ch, n))
}

// banner prints "\n" + a rule, the title and another rule.
func (p *printer) banner(title string, width int) {
	p.blank()
	p.rule("=", width)
	p.heading(title)
	p.rule("=", width)
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// preview returns the first n runes of s.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
