// Command gridctl runs a two-axis sensitivity sweep over a base scenario
// and prints the resulting MOIC matrix (IRR is not printed).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"lboengine/pkg/config"
	"lboengine/pkg/lbo"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	configPath := flag.String("config", "", "path to a base scenario file (.yaml, .yml or .json)")
	gridPath := flag.String("grid", "", "path to a sensitivity grid file (.hjson)")
	timeoutSeconds := flag.Int("timeout", 60, "seconds before the grid run is cancelled")
	flag.Parse()

	if *configPath == "" || *gridPath == "" {
		fmt.Println("[FATAL] -config and -grid are both required")
		os.Exit(1)
	}

	base, err := loadInput(*configPath)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	rowAxis, colAxis, err := config.LoadGrid(*gridPath)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("[RUN] sweeping %s x %s across %d x %d cells...\n",
		rowAxis.Name, colAxis.Name, len(rowAxis.Values), len(colAxis.Values))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeoutSeconds)*time.Second)
	defer cancel()

	grid := lbo.RunSensitivityGrid(ctx, base, rowAxis, colAxis)

	fmt.Printf("%-12s", grid.RowAxis+"\\"+grid.ColAxis)
	for _, cv := range colAxis.Values {
		fmt.Printf("%12.3f", cv)
	}
	fmt.Println()

	for r, row := range grid.Cells {
		fmt.Printf("%-12.3f", rowAxis.Values[r])
		for _, cell := range row {
			if cell.Err != nil {
				fmt.Printf("%12s", "err")
				continue
			}
			if cell.MOIC == nil {
				fmt.Printf("%12s", "n/a")
				continue
			}
			fmt.Printf("%12.2f", *cell.MOIC)
		}
		fmt.Println()
	}
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
