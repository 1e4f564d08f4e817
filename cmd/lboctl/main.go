// Command lboctl runs a single LBO scenario from a config file and
// prints (or saves) an investor memo.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"lboengine/pkg/config"
	"lboengine/pkg/lbo"
	"lboengine/pkg/report"
	"lboengine/pkg/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	configPath := flag.String("config", "", "path to a scenario file (.yaml, .yml or .json)")
	scenarioName := flag.String("scenario", "scenario", "scenario name, used in the memo title and storage key")
	memoPath := flag.String("memo", "", "optional path to write the rendered Markdown memo to; defaults to stdout")
	save := flag.Bool("save", false, "persist the run to Postgres via DATABASE_URL")
	flag.Parse()

	if *configPath == "" {
		fmt.Println("[FATAL] -config is required")
		os.Exit(1)
	}

	fmt.Printf("[LOAD] Reading scenario from %s...\n", *configPath)
	input, err := loadInput(*configPath)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	assumptions, err := lbo.NewAssumptions(input)
	if err != nil {
		fmt.Printf("[FATAL] invalid assumptions: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("[RUN] Projecting cash flows and debt schedule...")
	bundle, err := lbo.RunProjection(assumptions)
	if err != nil {
		fmt.Printf("[FATAL] projection failed: %v\n", err)
		os.Exit(1)
	}

	if bundle.Validation.Suspect {
		fmt.Println("[WARN] run flagged suspect: cumulative reconciliation plug exceeds 1% of final equity")
	}
	for _, f := range bundle.Validation.Findings {
		fmt.Printf("[%s] %s: %s\n", strings.ToUpper(string(f.Category)), f.Code, f.Message)
	}

	memo, err := report.RenderMemo(*scenarioName, bundle)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	if *memoPath == "" {
		fmt.Println(memo)
	} else {
		if err := os.WriteFile(*memoPath, []byte(memo), 0o644); err != nil {
			fmt.Printf("[FATAL] failed to write memo: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[DONE] memo written to %s\n", *memoPath)
	}

	if *save {
		ctx := context.Background()
		if err := store.InitDB(ctx); err != nil {
			fmt.Printf("[FATAL] %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		if err := store.NewRunRepo().Save(ctx, *scenarioName, bundle); err != nil {
			fmt.Printf("[FATAL] %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[DONE] run %s saved\n", bundle.RunID)
	}

	if bundle.Returns.MOIC != nil {
		fmt.Printf("[DONE] MOIC %.2fx", *bundle.Returns.MOIC)
	} else {
		fmt.Print("[DONE] MOIC indeterminate")
	}
	if bundle.Returns.IRR != nil {
		fmt.Printf(", IRR %.1f%%", *bundle.Returns.IRR*100)
	}
	fmt.Println()
}

func loadInput(path string) (lbo.AssumptionsInput, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return config.LoadYAML(path)
	case ".json":
		return config.LoadJSON(path)
	default:
		return lbo.AssumptionsInput{}, fmt.Errorf("unrecognized config extension for %s (want .yaml, .yml or .json)", path)
	}
}
