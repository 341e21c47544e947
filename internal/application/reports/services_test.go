package reports_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/application/reports"
	domain "github.com/bryanwahyu/leadscope/internal/domain/companies"
)

// mockSource is an in-memory domain.Source.
type mockSource struct {
	ds       *domain.Dataset
	err      error
	location string
}

func (m *mockSource) Load(ctx context.Context) (*domain.Dataset, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ds, nil
}

func (m *mockSource) Location() string { return m.location }

// mockBriefer returns canned talking points.
type mockBriefer struct {
	text  string
	err   error
	calls int
}

func (m *mockBriefer) Brief(ctx context.Context, c domain.Company) (string, error) {
	m.calls++
	return m.text, m.err
}

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func sampleRecords() []domain.Company {
	return []domain.Company{
		{
			Name:         "CloudTech",
			Industry:     "SaaS",
			Size:         "50-200",
			TechStack:    "AWS, React, Python",
			PainPoints:   "Scaling infrastructure and API integration with legacy systems is slow",
			ContactName:  "Jane Doe",
			ContactEmail: "jane@cloudtech.io",
			Source:       "LinkedIn",
		},
		{
			Name:         "FinServe",
			Industry:     "FinTech",
			Size:         "200-500",
			TechStack:    "AWS, Java, Kafka",
			PainPoints:   "Regulatory compliance and data quality",
			ContactName:  "Bob Lee",
			ContactEmail: "bob@finserve.com",
			Source:       "Conference",
		},
		{
			Name:         "DataPilot",
			Industry:     "SaaS",
			Size:         "10-50",
			TechStack:    "GCP, Python, React",
			PainPoints:   "Competing in a crowded market; onboarding new users",
			ContactName:  "Ann Ray",
			ContactEmail: "ann@datapilot.ai",
			Source:       "Website",
		},
		{
			Name:         "MediCore",
			Industry:     "Healthcare",
			Size:         "500+",
			TechStack:    "Azure, .NET",
			PainPoints:   "Patient privacy and security",
			ContactName:  "Tom Fox",
			ContactEmail: "tom@medicore.org",
			Source:       "Referral",
		},
	}
}

func newTestService(src domain.Source) (*reports.Service, *bytes.Buffer) {
	var buf bytes.Buffer
	return &reports.Service{
		Source: src,
		Out:    &buf,
		Logger: zap.NewNop(),
		Clock:  fixedClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, &buf
}

func fullDataset() *domain.Dataset {
	return &domain.Dataset{Columns: domain.Columns, Records: sampleRecords()}
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestNewService_Defaults(t *testing.T) {
	t.Parallel()

	svc := reports.NewService(&mockSource{})
	assert.NotNil(t, svc.Out)
	assert.NotNil(t, svc.Logger)
	assert.NotNil(t, svc.Clock)
}

func TestService_AnalyzeIndustries(t *testing.T) {
	t.Parallel()

	svc, out := newTestService(&mockSource{ds: fullDataset()})
	res, err := svc.AnalyzeIndustries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, res.Total)
	assert.Equal(t, map[string]int{"SaaS": 2, "FinTech": 1, "Healthcare": 1}, res.IndustryCounts)
	assert.Equal(t, map[string]int{"AWS": 1, "React": 2, "Python": 2, "GCP": 1}, res.IndustryTech["SaaS"])
	require.Len(t, res.Distribution, 3)
	assert.Equal(t, reports.IndustryShare{Industry: "SaaS", Count: 2, Percentage: 50}, res.Distribution[0])
	assert.Equal(t, "FinTech", res.Distribution[1].Industry)
	assert.Equal(t, "Healthcare", res.Distribution[2].Industry)

	want := lines(
		"",
		strings.Repeat("=", 50),
		"INDUSTRY ANALYSIS",
		strings.Repeat("=", 50),
		"",
		" INDUSTRY DISTRIBUTION (4 companies):",
		strings.Repeat("-", 30),
		"• SaaS: 2 companies (50.0%)",
		"• FinTech: 1 companies (25.0%)",
		"• Healthcare: 1 companies (25.0%)",
		"",
		"  TOP TECHNOLOGIES BY INDUSTRY:",
		strings.Repeat("-", 30),
		"• SaaS: React (2), Python (2), AWS (1)",
		"• FinTech: AWS (1), Java (1), Kafka (1)",
		"• Healthcare: Azure (1), .NET (1)",
	)
	assert.Equal(t, want, out.String())
}

func TestService_AnalyzeIndustries_Properties(t *testing.T) {
	t.Parallel()

	records := make([]domain.Company, 0, 37)
	industries := []string{"SaaS", "FinTech", "Healthcare", "Retail", "Logistics", "EdTech", "Media"}
	for i := 0; i < 37; i++ {
		records = append(records, domain.Company{
			Name:      fmt.Sprintf("Company %d", i),
			Industry:  industries[(i*i+3)%len(industries)],
			TechStack: "Go, Postgres",
		})
	}
	svc, _ := newTestService(&mockSource{ds: &domain.Dataset{Columns: domain.Columns, Records: records}})

	res, err := svc.AnalyzeIndustries(context.Background())
	require.NoError(t, err)

	sum := 0
	for _, c := range res.IndustryCounts {
		sum += c
	}
	assert.Equal(t, len(records), sum)

	pct := 0.0
	for _, d := range res.Distribution {
		pct += d.Percentage
	}
	assert.InDelta(t, 100.0, pct, 1e-9)

	for i := 1; i < len(res.Distribution); i++ {
		assert.GreaterOrEqual(t, res.Distribution[i-1].Count, res.Distribution[i].Count)
	}
}

func TestService_AnalyzeIndustries_Empty(t *testing.T) {
	t.Parallel()

	svc, out := newTestService(&mockSource{ds: &domain.Dataset{Columns: domain.Columns, Records: []domain.Company{}}})
	res, err := svc.AnalyzeIndustries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Distribution)
	assert.Contains(t, out.String(), " INDUSTRY DISTRIBUTION (0 companies):")
}

func TestService_MissingDataset(t *testing.T) {
	t.Parallel()

	src := &mockSource{err: fmt.Errorf("%w: data.csv", domain.ErrNotFound), location: "data.csv"}
	wantMsg := "Error: File data.csv not found.\n"

	tests := []struct {
		name string
		run  func(*reports.Service) (empty bool, err error)
	}{
		{
			name: "industries",
			run: func(s *reports.Service) (bool, error) {
				r, err := s.AnalyzeIndustries(context.Background())
				return r.Total == 0 && len(r.IndustryCounts) == 0, err
			},
		},
		{
			name: "tech",
			run: func(s *reports.Service) (bool, error) {
				r, err := s.FindByTech(context.Background(), "aws")
				return r != nil && len(r) == 0, err
			},
		},
		{
			name: "industry",
			run: func(s *reports.Service) (bool, error) {
				r, err := s.FindByIndustry(context.Background(), "saas")
				return r != nil && len(r) == 0, err
			},
		},
		{
			name: "painpoints",
			run: func(s *reports.Service) (bool, error) {
				r, err := s.AnalyzePainPoints(context.Background())
				return r.Total == 0 && len(r.Counts) == 0, err
			},
		},
		{
			name: "research",
			run: func(s *reports.Service) (bool, error) {
				r, err := s.ResearchReport(context.Background(), "cloud", reports.ResearchOptions{})
				return r == nil, err
			},
		},
		{
			name: "list",
			run: func(s *reports.Service) (bool, error) {
				r, err := s.ListAll(context.Background())
				return r != nil && len(r) == 0, err
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, out := newTestService(src)
			empty, err := tt.run(svc)
			require.NoError(t, err)
			assert.True(t, empty)
			assert.Equal(t, wantMsg, out.String())
		})
	}
}

func TestService_LoadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	svc, out := newTestService(&mockSource{err: boom})

	_, err := svc.ListAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, out.String())
}

func TestService_MissingColumn(t *testing.T) {
	t.Parallel()

	ds := &domain.Dataset{
		Columns: []string{domain.ColCompany, domain.ColIndustry},
		Records: []domain.Company{{Name: "Acme", Industry: "Retail"}},
	}
	svc, _ := newTestService(&mockSource{ds: ds})

	_, err := svc.AnalyzeIndustries(context.Background())
	assert.ErrorIs(t, err, domain.ErrMissingColumn)

	_, err = svc.AnalyzePainPoints(context.Background())
	assert.ErrorIs(t, err, domain.ErrMissingColumn)

	_, err = svc.FindByIndustry(context.Background(), "retail")
	assert.ErrorIs(t, err, domain.ErrMissingColumn)

	// no match means the secondary columns are never read
	got, err := svc.FindByIndustry(context.Background(), "aerospace")
	require.NoError(t, err)
	assert.Empty(t, got)

	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_FindByTech(t *testing.T) {
	t.Parallel()

	svc, out := newTestService(&mockSource{ds: fullDataset()})
	got, err := svc.FindByTech(context.Background(), "aws")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "CloudTech", got[0].Name)
	assert.Equal(t, "FinServe", got[1].Name)

	want := lines(
		"",
		" COMPANIES USING AWS: 2 found",
		strings.Repeat("-", 40),
		"• CloudTech (SaaS)",
		"  Size: 50-200 | Pain: Scaling infrastructure and API integration with legacy syste...",
		"",
		"• FinServe (FinTech)",
		"  Size: 200-500 | Pain: Regulatory compliance and data quality...",
		"",
	)
	assert.Equal(t, want, out.String())
}

func TestService_FindByTech_CaseInsensitivePartial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  []string
	}{
		{query: "PYTH", want: []string{"CloudTech", "DataPilot"}},
		{query: "react", want: []string{"CloudTech", "DataPilot"}},
		{query: ".net", want: []string{"MediCore"}},
		{query: "rust", want: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			svc, out := newTestService(&mockSource{ds: fullDataset()})
			got, err := svc.FindByTech(context.Background(), tt.query)
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)
			assert.Contains(t, out.String(), fmt.Sprintf("%d found", len(tt.want)))
		})
	}
}

func TestService_FindByIndustry(t *testing.T) {
	t.Parallel()

	svc, out := newTestService(&mockSource{ds: fullDataset()})
	got, err := svc.FindByIndustry(context.Background(), "saas")
	require.NoError(t, err)
	require.Len(t, got, 2)

	want := lines(
		"",
		" COMPANIES IN SAAS: 2 found",
		strings.Repeat("-", 40),
		"• CloudTech",
		"  Tech: AWS, React, Python",
		"  Contact: jane@cloudtech.io",
		"",
		"• DataPilot",
		"  Tech: GCP, Python, React",
		"  Contact: ann@datapilot.ai",
		"",
	)
	assert.Equal(t, want, out.String())
}

func TestService_FindByIndustry_Partial(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(&mockSource{ds: fullDataset()})
	got, err := svc.FindByIndustry(context.Background(), "TECH")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "FinServe", got[0].Name)
}

func TestService_AnalyzePainPoints(t *testing.T) {
	t.Parallel()

	svc, out := newTestService(&mockSource{ds: fullDataset()})
	res, err := svc.AnalyzePainPoints(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, res.Total)
	assert.Len(t, res.Counts, len(domain.PainCategories))
	assert.Equal(t, 2, res.Counts[domain.PainPrivacy])
	assert.Equal(t, 1, res.Counts[domain.PainCompliance])
	assert.Equal(t, 0, res.Counts[domain.PainComplexity])
	assert.Equal(t, 0, res.Counts[domain.PainSalesCycles])

	want := lines(
		"",
		strings.Repeat("=", 50),
		"PAIN POINT ANALYSIS RESULTS",
		strings.Repeat("=", 50),
		"• Privacy & Security: 2/4 companies (50.0%)",
		"• Competition Pressure: 1/4 companies (25.0%)",
		"• Compliance & Regulations: 1/4 companies (25.0%)",
		"• Data Accuracy & Quality: 1/4 companies (25.0%)",
		"• Scalability & Performance: 1/4 companies (25.0%)",
		"• Customer/User Adoption: 1/4 companies (25.0%)",
		"• Integration Challenges: 1/4 companies (25.0%)",
	)
	assert.Equal(t, want, out.String())
}

func TestService_AnalyzePainPoints_NonExclusive(t *testing.T) {
	t.Parallel()

	ds := &domain.Dataset{
		Columns: domain.Columns,
		Records: []domain.Company{{PainPoints: "compliance, security, scaling and API integration"}},
	}
	svc, _ := newTestService(&mockSource{ds: ds})
	res, err := svc.AnalyzePainPoints(context.Background())
	require.NoError(t, err)

	sum := 0
	for _, c := range res.Counts {
		sum += c
	}
	assert.Greater(t, sum, res.Total)
	for _, r := range res.Ranking {
		assert.Equal(t, 1, r.Count)
		assert.True(t, math.Abs(r.Percentage-100) < 1e-9)
	}
}

func TestService_ResearchReport(t *testing.T) {
	t.Parallel()

	svc, out := newTestService(&mockSource{ds: fullDataset()})
	res, err := svc.ResearchReport(context.Background(), "CLOUD", reports.ResearchOptions{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "CloudTech", res.Company.Name)
	assert.Empty(t, res.TalkingPoints)

	want := lines(
		"",
		strings.Repeat("=", 60),
		" PRE-CALL RESEARCH: CLOUDTECH",
		strings.Repeat("=", 60),
		" Industry: SaaS",
		" Company Size: 50-200 employees",
		"  Tech Stack: AWS, React, Python",
		" Pain Points: Scaling infrastructure and API integration with legacy systems is slow",
		" Contact: Jane Doe | jane@cloudtech.io",
		" Source: LinkedIn",
		strings.Repeat("=", 60),
	)
	assert.Equal(t, want, out.String())
}

func TestService_ResearchReport_NotFound(t *testing.T) {
	t.Parallel()

	svc, out := newTestService(&mockSource{ds: fullDataset()})
	res, err := svc.ResearchReport(context.Background(), "Globex", reports.ResearchOptions{})
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, "Company 'Globex' not found in database.\n", out.String())
}

func TestService_ResearchReport_Brief(t *testing.T) {
	t.Parallel()

	t.Run("talking points appended", func(t *testing.T) {
		t.Parallel()
		briefer := &mockBriefer{text: "1. Ask about scaling."}
		svc, out := newTestService(&mockSource{ds: fullDataset()})
		svc.Briefer = briefer

		res, err := svc.ResearchReport(context.Background(), "medi", reports.ResearchOptions{Brief: true})
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, 1, briefer.calls)
		assert.Equal(t, "1. Ask about scaling.", res.TalkingPoints)
		assert.Contains(t, out.String(), " TALKING POINTS\n")
		assert.Contains(t, out.String(), "1. Ask about scaling.\n")
	})

	t.Run("briefer failure does not fail the report", func(t *testing.T) {
		t.Parallel()
		svc, out := newTestService(&mockSource{ds: fullDataset()})
		svc.Briefer = &mockBriefer{err: errors.New("quota")}

		res, err := svc.ResearchReport(context.Background(), "medi", reports.ResearchOptions{Brief: true})
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Empty(t, res.TalkingPoints)
		assert.Contains(t, out.String(), "Talking points unavailable: quota")
	})

	t.Run("no briefer configured", func(t *testing.T) {
		t.Parallel()
		svc, out := newTestService(&mockSource{ds: fullDataset()})

		res, err := svc.ResearchReport(context.Background(), "medi", reports.ResearchOptions{Brief: true})
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Contains(t, out.String(), "Talking points unavailable: briefer not configured")
	})

	t.Run("brief not requested", func(t *testing.T) {
		t.Parallel()
		briefer := &mockBriefer{text: "unused"}
		svc, _ := newTestService(&mockSource{ds: fullDataset()})
		svc.Briefer = briefer

		_, err := svc.ResearchReport(context.Background(), "medi", reports.ResearchOptions{})
		require.NoError(t, err)
		assert.Zero(t, briefer.calls)
	})
}

func TestService_ListAll(t *testing.T) {
	t.Parallel()

	svc, out := newTestService(&mockSource{ds: fullDataset()})
	got, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 4)

	want := lines(
		"",
		" ALL COMPANIES IN DATABASE (4 total)",
		strings.Repeat("-", 40),
		"1. CloudTech - SaaS",
		"2. FinServe - FinTech",
		"3. DataPilot - SaaS",
		"4. MediCore - Healthcare",
	)
	assert.Equal(t, want, out.String())
}
