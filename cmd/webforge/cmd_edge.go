package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"webforge/internal/discover"
	"webforge/internal/edgecase"
	"webforge/internal/format"
	"webforge/internal/logging"
	"webforge/internal/report"
	"webforge/internal/testcase"
)

var edgeFlags struct {
	url           string
	kind          string
	outputDir     string
	pageFile      string
	endpointsFile string
	maxCases      int
	lengthCap     int
	only          []string
	outputFormat  string
}

var edgeCmd = &cobra.Command{
	Use:   "edge [url]",
	Short: "Synthesize deterministic edge-case tests without an LLM",
	Long: `Edge derives boundary, security, validation, accessibility and
performance tests directly from the discovered page structure or observed
endpoints. No model is involved, so the output is fully deterministic.

Usage:
  webforge edge https://shop.example.com
  webforge edge --kind=api --endpoints=endpoints.json
  webforge edge --only=security --only=boundary https://shop.example.com`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdge,
}

func init() {
	f := edgeCmd.Flags()
	f.StringVar(&edgeFlags.url, "url", "", "Application base URL (or positional arg)")
	f.StringVar(&edgeFlags.kind, "kind", "gui", "Suite kind: gui or api")
	f.StringVarP(&edgeFlags.outputDir, "output", "o", ".webforge/suites", "Output directory for suite JSON")
	f.StringVar(&edgeFlags.pageFile, "page", "", "Use a saved page structure JSON instead of discovery")
	f.StringVar(&edgeFlags.endpointsFile, "endpoints", "", "Use a saved endpoint list JSON instead of discovery")
	f.IntVar(&edgeFlags.maxCases, "max-cases", 0, "Cap on synthesized cases (0 = default)")
	f.IntVar(&edgeFlags.lengthCap, "length-cap", 0, "Assumed server-side field length cap (0 = default)")
	f.StringSliceVar(&edgeFlags.only, "only", nil, "Restrict to categories: security, boundary, validation, performance, accessibility (repeatable)")
	f.StringVar(&edgeFlags.outputFormat, "format", "ascii", "Report format: ascii or markdown")
}

func runEdge(cmd *cobra.Command, args []string) error {
	log := logging.New("edge")
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.AppURL = args[0]
	} else if edgeFlags.url != "" {
		cfg.AppURL = edgeFlags.url
	}

	ecfg := cfg.EdgeCases
	if len(edgeFlags.only) > 0 {
		ecfg = onlyCategories(edgeFlags.only)
	}
	if edgeFlags.maxCases > 0 {
		ecfg.MaxEdgeCases = edgeFlags.maxCases
	}
	if edgeFlags.lengthCap > 0 {
		ecfg.MaxLengthCap = edgeFlags.lengthCap
	}

	mode := format.ParseMode(edgeFlags.outputFormat)
	switch edgeFlags.kind {
	case "gui":
		page, err := resolvePage(ctx, cfg.AppURL)
		if err != nil {
			return err
		}
		cases := edgecase.GUI(page, ecfg, testcase.NewIDSet())
		path := filepath.Join(edgeFlags.outputDir, "gui-edge-cases.json")
		if err := writeJSON(path, cases); err != nil {
			return err
		}
		fmt.Println(report.GUISuite(cases, mode))
		log.Info("edge cases written", "path", path, "cases", len(cases))
	case "api":
		eps, err := resolveEndpoints(ctx, cfg.AppURL)
		if err != nil {
			return err
		}
		cases := edgecase.API(eps, ecfg, testcase.NewIDSet())
		path := filepath.Join(edgeFlags.outputDir, "api-edge-cases.json")
		if err := writeJSON(path, cases); err != nil {
			return err
		}
		fmt.Println(report.APISuite(cases, mode))
		log.Info("edge cases written", "path", path, "cases", len(cases))
	default:
		return fmt.Errorf("unknown kind %q (want gui or api)", edgeFlags.kind)
	}
	return nil
}

func onlyCategories(names []string) edgecase.Config {
	cfg := edgecase.Config{
		MaxEdgeCases: edgecase.DefaultConfig().MaxEdgeCases,
		MaxLengthCap: edgecase.DefaultConfig().MaxLengthCap,
	}
	for _, n := range names {
		switch n {
		case "security":
			cfg.Security = true
		case "boundary":
			cfg.Boundary = true
		case "validation":
			cfg.DataValidation = true
		case "performance":
			cfg.PerformanceEdge = true
		case "accessibility":
			cfg.Accessibility = true
		}
	}
	return cfg
}

func resolvePage(ctx context.Context, appURL string) (*discover.PageInfo, error) {
	if edgeFlags.pageFile != "" {
		return loadPage(edgeFlags.pageFile)
	}
	if appURL == "" {
		return nil, fmt.Errorf("a url or --page file is required")
	}
	browser := discover.NewBrowser(ctx)
	defer browser.Close()
	page, err := browser.Browse(ctx, appURL)
	if err != nil {
		return nil, fmt.Errorf("discover page: %w", err)
	}
	return page, nil
}

func resolveEndpoints(ctx context.Context, appURL string) ([]discover.Endpoint, error) {
	if edgeFlags.endpointsFile != "" {
		return loadEndpoints(edgeFlags.endpointsFile)
	}
	if appURL == "" {
		return nil, fmt.Errorf("a url or --endpoints file is required")
	}
	browser := discover.NewBrowser(ctx)
	defer browser.Close()
	eps, err := browser.CaptureAPI(ctx, appURL)
	if err != nil {
		return nil, fmt.Errorf("capture endpoints: %w", err)
	}
	return eps, nil
}
