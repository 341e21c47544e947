package main

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/application"
	"github.com/bryanwahyu/leadscope/internal/application/reports"
	"github.com/bryanwahyu/leadscope/internal/health"
	"github.com/bryanwahyu/leadscope/internal/validate"
)

const defaultTimeout = 30 * time.Second

var industriesCmd = &cobra.Command{
	Use:   "industries",
	Short: "Industry distribution and top technologies per industry",
	Args:  cobra.NoArgs,
	RunE:  runIndustries,
}

var techCmd = &cobra.Command{
	Use:   "tech <technology>",
	Short: "Companies whose tech stack mentions a technology",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTech,
}

var industryCmd = &cobra.Command{
	Use:   "industry <industry>",
	Short: "Companies in an industry",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIndustry,
}

var painPointsCmd = &cobra.Command{
	Use:   "painpoints",
	Short: "Pain point categories across all companies",
	Args:  cobra.NoArgs,
	RunE:  runPainPoints,
}

var researchCmd = &cobra.Command{
	Use:   "research <company>",
	Short: "Pre-call research sheet for the first company whose name matches",
	Long: `Prints the research sheet of the first company whose name contains the
query, ignoring case. With --brief, AI talking points are appended when an
OpenAI API key is configured.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every company with its industry",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the configured dataset source (and OpenAI, if configured) is reachable",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func runIndustries(cmd *cobra.Command, args []string) error {
	return runReport(cmd, func(ctx context.Context, svc *reports.Service) (any, error) {
		return svc.AnalyzeIndustries(ctx)
	})
}

func runTech(cmd *cobra.Command, args []string) error {
	tech, err := validate.SearchTerm("technology", strings.Join(args, " "))
	if err != nil {
		return err
	}
	return runReport(cmd, func(ctx context.Context, svc *reports.Service) (any, error) {
		return svc.FindByTech(ctx, tech)
	})
}

func runIndustry(cmd *cobra.Command, args []string) error {
	industry, err := validate.SearchTerm("industry", strings.Join(args, " "))
	if err != nil {
		return err
	}
	return runReport(cmd, func(ctx context.Context, svc *reports.Service) (any, error) {
		return svc.FindByIndustry(ctx, industry)
	})
}

func runPainPoints(cmd *cobra.Command, args []string) error {
	return runReport(cmd, func(ctx context.Context, svc *reports.Service) (any, error) {
		return svc.AnalyzePainPoints(ctx)
	})
}

func runResearch(cmd *cobra.Command, args []string) error {
	query, err := validate.SearchTerm("company", strings.Join(args, " "))
	if err != nil {
		return err
	}
	return runReport(cmd, func(ctx context.Context, svc *reports.Service) (any, error) {
		if brief {
			svc.Briefer = newBriefer(currentConfig())
		}
		return svc.ResearchReport(ctx, query, reports.ResearchOptions{Brief: brief})
	})
}

func runList(cmd *cobra.Command, args []string) error {
	return runReport(cmd, func(ctx context.Context, svc *reports.Service) (any, error) {
		return svc.ListAll(ctx)
	})
}

// runReport opens the source, runs one use case and, in json mode, prints
// its result instead of the text report.
func runReport(cmd *cobra.Command, fn func(context.Context, *reports.Service) (any, error)) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	src, closeSrc, err := openSource(currentConfig())
	if err != nil {
		return err
	}
	defer closeSrc()

	out := cmd.OutOrStdout()
	svc := &reports.Service{
		Source: src,
		Out:    out,
		Logger: log().With(zap.String("command", cmd.Name())),
		Clock:  application.SystemClock{},
	}
	jsonOut := strings.EqualFold(format, validate.FormatJSON)
	if jsonOut {
		svc.Out = io.Discard
	}

	res, err := fn(ctx, svc)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(out, res)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	c := currentConfig()
	src, closeSrc, err := openSource(c)
	if err != nil {
		return err
	}
	defer closeSrc()

	checkers := map[string]health.Checker{}
	if ch, ok := src.(health.Checker); ok {
		checkers[c.Source.Kind] = ch
	}
	if b := newBriefer(c); b != nil {
		if ch, ok := b.(health.Checker); ok {
			checkers["openai"] = ch
		}
	}

	st := health.Run(ctx, checkers, opTimeout(), time.Now())
	out := cmd.OutOrStdout()
	if strings.EqualFold(format, validate.FormatJSON) {
		if err := writeJSON(out, st); err != nil {
			return err
		}
	} else {
		st.Write(out)
	}

	log().Info("health check finished",
		zap.String("status", st.Status),
		zap.Int("checks", len(st.Checks)))
	if !st.Healthy() {
		return errCheckFailed
	}
	return nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, opTimeout())
}

func opTimeout() time.Duration {
	if timeout <= 0 {
		return defaultTimeout
	}
	return timeout
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
