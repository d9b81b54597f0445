package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"webforge/internal/config"
	"webforge/internal/discover"
	"webforge/internal/edgecase"
	"webforge/internal/format"
	"webforge/internal/generate"
	"webforge/internal/logging"
	"webforge/internal/report"
	"webforge/internal/store"
)

var generateFlags struct {
	url           string
	kind          string
	outputDir     string
	pageFile      string
	endpointsFile string
	maxCases      int
	journeys      []string
	noEdgeCases   bool
	noDiscover    bool
	noStore       bool
	outputFormat  string
}

var generateCmd = &cobra.Command{
	Use:   "generate [url]",
	Short: "Generate GUI and API test suites for a web application",
	Long: `Generate discovers the application (headless Chrome), asks the LLM for
test cases, validates and hardens them with deterministic edge cases, and
scores the result. Suites are written as JSON and snapshotted to the
workspace DB.

Usage:
  webforge generate https://shop.example.com
  webforge generate --kind=api --endpoints=endpoints.json https://shop.example.com
  webforge generate --no-discover --page=page.json https://shop.example.com`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.url, "url", "", "Application base URL (or positional arg)")
	f.StringVar(&generateFlags.kind, "kind", "both", "Suite kind: gui, api, or both")
	f.StringVarP(&generateFlags.outputDir, "output", "o", ".webforge/suites", "Output directory for suite JSON")
	f.StringVar(&generateFlags.pageFile, "page", "", "Use a saved page structure JSON instead of discovery")
	f.StringVar(&generateFlags.endpointsFile, "endpoints", "", "Use a saved endpoint list JSON instead of discovery")
	f.IntVar(&generateFlags.maxCases, "max-cases", 0, "Cap on LLM-generated cases per suite (0 = default)")
	f.StringSliceVar(&generateFlags.journeys, "journey", nil, "User journey description (repeatable)")
	f.BoolVar(&generateFlags.noEdgeCases, "no-edge-cases", false, "Skip deterministic edge-case synthesis")
	f.BoolVar(&generateFlags.noDiscover, "no-discover", false, "Skip browser discovery (use --page/--endpoints or URL only)")
	f.BoolVar(&generateFlags.noStore, "no-store", false, "Do not snapshot suites to the workspace DB")
	f.StringVar(&generateFlags.outputFormat, "format", "ascii", "Report format: ascii or markdown")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logging.New("generate")
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.AppURL = args[0]
	} else if generateFlags.url != "" {
		cfg.AppURL = generateFlags.url
	}
	if generateFlags.maxCases > 0 {
		cfg.MaxTestCases = generateFlags.maxCases
	}
	if len(generateFlags.journeys) > 0 {
		cfg.UserJourneys = generateFlags.journeys
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	wantGUI := generateFlags.kind == "gui" || generateFlags.kind == "both"
	wantAPI := generateFlags.kind == "api" || generateFlags.kind == "both"
	if !wantGUI && !wantAPI {
		return fmt.Errorf("unknown kind %q (want gui, api, or both)", generateFlags.kind)
	}

	req := generate.Request{
		AppURL:       cfg.AppURL,
		UserJourneys: cfg.UserJourneys,
		MaxTestCases: cfg.MaxTestCases,
		EdgeCases:    cfg.EdgeCases,
	}
	if generateFlags.noEdgeCases {
		req.EdgeCases = edgecase.Config{}
	}

	if err := resolveInputs(ctx, &req, wantGUI, wantAPI); err != nil {
		return err
	}

	client := buildClient(cfg)
	runID := uuid.NewString()
	log.Info("starting generation", "run_id", runID, "url", cfg.AppURL, "kind", generateFlags.kind)

	var guiRes *generate.GUIResult
	var apiRes *generate.APIResult
	g, gctx := errgroup.WithContext(ctx)
	if wantGUI {
		g.Go(func() error {
			res, err := generate.GUISuite(gctx, client, req)
			guiRes = res
			return err
		})
	}
	if wantAPI {
		g.Go(func() error {
			res, err := generate.APISuite(gctx, client, req)
			apiRes = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	mode := format.ParseMode(generateFlags.outputFormat)
	if guiRes != nil {
		path := filepath.Join(generateFlags.outputDir, "gui-suite.json")
		if err := writeJSON(path, guiRes); err != nil {
			return err
		}
		fmt.Println(report.GUISuite(guiRes.Cases, mode))
		fmt.Println(report.Quality("GUI Quality", guiRes.Quality, mode))
		log.Info("gui suite written", "path", path, "cases", len(guiRes.Cases), "fallback", guiRes.UsedFallback)
	}
	if apiRes != nil {
		path := filepath.Join(generateFlags.outputDir, "api-suite.json")
		if err := writeJSON(path, apiRes); err != nil {
			return err
		}
		fmt.Println(report.APISuite(apiRes.Cases, mode))
		fmt.Println(report.Quality("API Quality", apiRes.Quality, mode))
		log.Info("api suite written", "path", path, "cases", len(apiRes.Cases), "fallback", apiRes.UsedFallback)
	}
	if guiRes != nil && apiRes != nil {
		fmt.Println(report.CoverageGaps(generate.Coverage(guiRes, apiRes), mode))
	}

	if !generateFlags.noStore {
		if err := snapshotResults(cfg, runID, guiRes, apiRes); err != nil {
			log.Warn("snapshots not saved", "error", err)
		}
	}
	return nil
}

// resolveInputs fills req.Page and req.Endpoints from files or browser
// discovery, per flags.
func resolveInputs(ctx context.Context, req *generate.Request, wantGUI, wantAPI bool) error {
	log := logging.New("generate")

	if generateFlags.pageFile != "" {
		page, err := loadPage(generateFlags.pageFile)
		if err != nil {
			return err
		}
		req.Page = page
	}
	if generateFlags.endpointsFile != "" {
		eps, err := loadEndpoints(generateFlags.endpointsFile)
		if err != nil {
			return err
		}
		req.Endpoints = eps
	}
	if generateFlags.noDiscover {
		return nil
	}

	needPage := wantGUI && req.Page == nil
	needEndpoints := wantAPI && req.Endpoints == nil
	if !needPage && !needEndpoints {
		return nil
	}

	browser := discover.NewBrowser(ctx)
	defer browser.Close()

	if needPage {
		page, err := browser.Browse(ctx, req.AppURL)
		if err != nil {
			return fmt.Errorf("discover page: %w", err)
		}
		req.Page = page
		log.Info("page discovered", "forms", len(page.Forms), "inputs", len(page.Inputs), "links", len(page.Links))
	}
	if needEndpoints {
		eps, err := browser.CaptureAPI(ctx, req.AppURL)
		if err != nil {
			return fmt.Errorf("capture endpoints: %w", err)
		}
		req.Endpoints = eps
		log.Info("endpoints captured", "count", len(eps))
	}
	return nil
}

func snapshotResults(cfg *config.Config, runID string, guiRes *generate.GUIResult, apiRes *generate.APIResult) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	save := func(kind string, cases any, overall int, count int, qual any) error {
		suiteJSON, err := json.Marshal(cases)
		if err != nil {
			return err
		}
		qualityJSON, err := json.Marshal(qual)
		if err != nil {
			return err
		}
		_, err = st.SaveSnapshot(&store.Snapshot{
			RunID:     runID,
			Kind:      kind,
			AppURL:    cfg.AppURL,
			CaseCount: count,
			Overall:   overall,
			Suite:     suiteJSON,
			Quality:   qualityJSON,
		})
		return err
	}

	if guiRes != nil {
		if err := save(store.KindGUI, guiRes.Cases, guiRes.Quality.Overall, len(guiRes.Cases), guiRes.Quality); err != nil {
			return err
		}
	}
	if apiRes != nil {
		if err := save(store.KindAPI, apiRes.Cases, apiRes.Quality.Overall, len(apiRes.Cases), apiRes.Quality); err != nil {
			return err
		}
	}
	return nil
}
