package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/application"
	"github.com/bryanwahyu/leadscope/internal/domain/briefing"
	domain "github.com/bryanwahyu/leadscope/internal/domain/companies"
)

// Service implements the report use-cases. Every method loads the whole
// dataset once, prints its report to Out and returns the same data.
type Service struct {
	Source  domain.Source
	Briefer briefing.Briefer
	Out     io.Writer
	Logger  *zap.Logger
	Clock   application.Clock
}

// NewService wires a Service with stdout, a no-op logger and the system clock.
func NewService(src domain.Source) *Service {
	return &Service{
		Source: src,
		Out:    os.Stdout,
		Logger: zap.NewNop(),
		Clock:  application.SystemClock{},
	}
}

func (s *Service) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Service) clock() application.Clock {
	if s.Clock == nil {
		return application.SystemClock{}
	}
	return s.Clock
}

func (s *Service) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

// load reads the dataset and checks the columns op needs. ok is false when
// the dataset does not exist; the message has then already been printed.
func (s *Service) load(ctx context.Context, op string, p *printer, cols ...string) (ds *domain.Dataset, ok bool, err error) {
	start := s.clock().Now()
	ds, err = s.Source.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		p.printf("Error: File %s not found.", s.Source.Location())
		s.log().Warn("dataset not found",
			zap.String("op", op),
			zap.String("location", s.Source.Location()))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading dataset: %w", err)
	}
	if err := ds.Require(cols...); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	s.log().Debug("dataset loaded",
		zap.String("op", op),
		zap.Int("records", ds.Len()),
		zap.Duration("elapsed", application.Elapsed(s.clock(), start)))
	return ds, true, nil
}

//
// ==== USE CASES ====
//

// AnalyzeIndustries counts records per industry and ranks the technologies
// used inside each industry.
func (s *Service) AnalyzeIndustries(ctx context.Context) (IndustryAnalysis, error) {
	p := newPrinter(s.out())
	ds, ok, err := s.load(ctx, "industries", p, domain.ColIndustry, domain.ColTechStack)
	if err != nil || !ok {
		return IndustryAnalysis{}, err
	}

	industries := newCounter()
	techByIndustry := map[string]*counter{}
	for _, c := range ds.Records {
		industries.add(c.Industry)
		tc, seen := techByIndustry[c.Industry]
		if !seen {
			tc = newCounter()
			techByIndustry[c.Industry] = tc
		}
		for _, tech := range c.Techs() {
			tc.add(tech)
		}
	}

	total := ds.Len()
	res := IndustryAnalysis{
		Total:           total,
		IndustryCounts:  industries.snapshot(),
		IndustryTech:    make(map[string]map[string]int, len(techByIndustry)),
		Distribution:    []IndustryShare{},
		TopTechnologies: []IndustryTechnologies{},
	}
	for _, e := range industries.mostCommon(0) {
		res.Distribution = append(res.Distribution, IndustryShare{
			Industry:   e.Key,
			Count:      e.Count,
			Percentage: percentage(e.Count, total),
		})
	}
	for _, ind := range industries.keys() {
		tc := techByIndustry[ind]
		res.IndustryTech[ind] = tc.snapshot()
		top := IndustryTechnologies{Industry: ind, Top: []TechCount{}}
		for _, e := range tc.mostCommon(3) {
			top.Top = append(top.Top, TechCount{Tech: e.Key, Count: e.Count})
		}
		res.TopTechnologies = append(res.TopTechnologies, top)
	}

	p.banner("INDUSTRY ANALYSIS", 50)
	p.blank()
	p.heading(fmt.Sprintf(" INDUSTRY DISTRIBUTION (%d companies):", total))
	p.rule("-", 30)
	for _, d := range res.Distribution {
		p.printf("• %s: %d companies (%.1f%%)", d.Industry, d.Count, d.Percentage)
	}
	p.blank()
	p.heading("  TOP TECHNOLOGIES BY INDUSTRY:")
	p.rule("-", 30)
	for _, it := range res.TopTechnologies {
		parts := make([]string, 0, len(it.Top))
		for _, tc := range it.Top {
			parts = append(parts, fmt.Sprintf("%s (%d)", tc.Tech, tc.Count))
		}
		p.printf("• %s: %s", it.Industry, strings.Join(parts, ", "))
	}

	s.log().Info("industry analysis generated",
		zap.Int("records", total),
		zap.Int("industries", len(res.Distribution)))
	return res, nil
}

// FindByTech returns records whose tech stack contains technology, ignoring case.
func (s *Service) FindByTech(ctx context.Context, technology string) ([]domain.Company, error) {
	p := newPrinter(s.out())
	ds, ok, err := s.load(ctx, "tech", p, domain.ColTechStack)
	if err != nil || !ok {
		return []domain.Company{}, err
	}

	matches := domain.Filter(ds.Records, func(c domain.Company) bool { return c.UsesTech(technology) })
	if len(matches) > 0 {
		if err := ds.Require(domain.ColCompany, domain.ColIndustry, domain.ColSize, domain.ColPainPoints); err != nil {
			return []domain.Company{}, fmt.Errorf("tech: %w", err)
		}
	}

	p.blank()
	p.heading(fmt.Sprintf(" COMPANIES USING %s: %d found", upper(technology), len(matches)))
	p.rule("-", 40)
	for _, c := range matches {
		p.printf("• %s (%s)", c.Name, c.Industry)
		p.printf("  Size: %s | Pain: %s...", c.Size, preview(c.PainPoints, painPreviewRunes))
		p.blank()
	}

	s.log().Info("technology filter applied",
		zap.String("technology", technology),
		zap.Int("matches", len(matches)))
	return matches, nil
}

// FindByIndustry returns records whose industry contains industry, ignoring case.
func (s *Service) FindByIndustry(ctx context.Context, industry string) ([]domain.Company, error) {
	p := newPrinter(s.out())
	ds, ok, err := s.load(ctx, "industry", p, domain.ColIndustry)
	if err != nil || !ok {
		return []domain.Company{}, err
	}

	matches := domain.Filter(ds.Records, func(c domain.Company) bool { return c.InIndustry(industry) })
	if len(matches) > 0 {
		if err := ds.Require(domain.ColCompany, domain.ColTechStack, domain.ColContactEmail); err != nil {
			return []domain.Company{}, fmt.Errorf("industry: %w", err)
		}
	}

	p.blank()
	p.heading(fmt.Sprintf(" COMPANIES IN %s: %d found", upper(industry), len(matches)))
	p.rule("-", 40)
	for _, c := range matches {
		p.printf("• %s", c.Name)
		p.printf("  Tech: %s", c.TechStack)
		p.printf("  Contact: %s", c.ContactEmail)
		p.blank()
	}

	s.log().Info("industry filter applied",
		zap.String("industry", industry),
		zap.Int("matches", len(matches)))
	return matches, nil
}

// AnalyzePainPoints buckets every record's pain points into the fixed
// categories. A record may count toward several categories.
func (s *Service) AnalyzePainPoints(ctx context.Context) (PainPointAnalysis, error) {
	p := newPrinter(s.out())
	ds, ok, err := s.load(ctx, "painpoints", p, domain.ColPainPoints)
	if err != nil || !ok {
		return PainPointAnalysis{}, err
	}

	names := make([]string, 0, len(domain.PainCategories))
	for _, cat := range domain.PainCategories {
		names = append(names, cat.Name)
	}
	counts := newCounterOf(names)
	for _, c := range ds.Records {
		for _, name := range domain.Categorize(c.PainPoints) {
			counts.add(name)
		}
	}

	total := ds.Len()
	res := PainPointAnalysis{
		Total:   total,
		Counts:  counts.snapshot(),
		Ranking: []CategoryShare{},
	}
	for _, e := range counts.mostCommon(0) {
		if e.Count == 0 {
			continue
		}
		res.Ranking = append(res.Ranking, CategoryShare{
			Category:   e.Key,
			Count:      e.Count,
			Percentage: percentage(e.Count, total),
		})
	}

	p.banner("PAIN POINT ANALYSIS RESULTS", 50)
	for _, r := range res.Ranking {
		p.printf("• %s: %d/%d companies (%.1f%%)", r.Category, r.Count, total, r.Percentage)
	}

	s.log().Info("pain point analysis generated",
		zap.Int("records", total),
		zap.Int("categories_hit", len(res.Ranking)))
	return res, nil
}

// ResearchReport prints the pre-call research sheet of the first company
// whose name contains query. A miss returns (nil, nil).
func (s *Service) ResearchReport(ctx context.Context, query string, opts ResearchOptions) (*Research, error) {
	p := newPrinter(s.out())
	ds, ok, err := s.load(ctx, "research", p, domain.ColCompany)
	if err != nil || !ok {
		return nil, err
	}

	c, found := domain.FindFirst(ds.Records, query)
	if !found {
		p.printf("Company '%s' not found in database.", query)
		s.log().Info("company not found", zap.String("query", query))
		return nil, nil
	}
	if err := ds.Require(domain.Columns...); err != nil {
		return nil, fmt.Errorf("research: %w", err)
	}

	p.banner(fmt.Sprintf(" PRE-CALL RESEARCH: %s", upper(c.Name)), 60)
	p.printf(" Industry: %s", c.Industry)
	p.printf(" Company Size: %s employees", c.Size)
	p.printf("  Tech Stack: %s", c.TechStack)
	p.printf(" Pain Points: %s", c.PainPoints)
	p.printf(" Contact: %s | %s", c.ContactName, c.ContactEmail)
	p.printf(" Source: %s", c.Source)
	p.rule("=", 60)

	res := &Research{Company: c}
	if opts.Brief {
		res.TalkingPoints = s.brief(ctx, p, c)
	}

	s.log().Info("research report generated",
		zap.String("query", query),
		zap.String("company", c.Name),
		zap.Bool("briefed", res.TalkingPoints != ""))
	return res, nil
}

// brief asks the Briefer for talking points. Failures are printed and
// logged, never returned: the research sheet itself already succeeded.
func (s *Service) brief(ctx context.Context, p *printer, c domain.Company) string {
	if s.Briefer == nil {
		p.printf("Talking points unavailable: %v", briefing.ErrNotConfigured)
		return ""
	}
	text, err := s.Briefer.Brief(ctx, c)
	if err != nil {
		s.log().Warn("briefing failed", zap.String("company", c.Name), zap.Error(err))
		p.printf("Talking points unavailable: %v", err)
		return ""
	}
	p.blank()
	p.heading(" TALKING POINTS")
	p.rule("-", 60)
	p.println(text)
	p.rule("=", 60)
	return text
}

// ListAll prints every company with its industry, numbered from 1.
func (s *Service) ListAll(ctx context.Context) ([]domain.Company, error) {
	p := newPrinter(s.out())
	ds, ok, err := s.load(ctx, "list", p, domain.ColCompany, domain.ColIndustry)
	if err != nil || !ok {
		return []domain.Company{}, err
	}

	p.blank()
	p.heading(fmt.Sprintf(" ALL COMPANIES IN DATABASE (%d total)", ds.Len()))
	p.rule("-", 40)
	for i, c := range ds.Records {
		p.printf("%d. %s - %s", i+1, c.Name, c.Industry)
	}

	s.log().Info("company listing generated", zap.Int("records", ds.Len()))
	return ds.Records, nil
}

