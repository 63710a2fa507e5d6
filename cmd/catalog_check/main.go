// catalog_check loads the configured crop catalog and reference tables and
// prints what would be served, optionally scoring a sample request.
//
//	go run ./cmd/catalog_check -soil loam -season Kharif -water high
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	config "agrofusion-api/configs"
	"agrofusion-api/pkg/server"
	"agrofusion-api/pkg/services"

	"github.com/joho/godotenv"
)

func main() {
	soil := flag.String("soil", "", "soil type to score against the catalog")
	season := flag.String("season", "", "season to score against the catalog")
	water := flag.String("water", "", "water availability (low/medium/high)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	cfg := config.LoadConfig()

	deps, err := server.LoadDependencies(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("Catalog: %s (%d crops)\n", deps.Catalog.Source(), deps.Catalog.Len())
	for i, c := range deps.Catalog.Crops() {
		fmt.Printf("  %d. %-10s soil=%s season=%s water=%s yield=%g price=%g\n",
			i+1, c.Name, strings.Join(c.Soils, ","), strings.Join(c.Seasons, ","), c.WaterNeed, c.BaseYield, c.Price)
	}
	fmt.Printf("Weather records: %d\n", deps.Weather.Len())
	fmt.Printf("Price records: %d\n", deps.Prices.Len())

	if *soil == "" && *season == "" && *water == "" {
		return
	}

	fmt.Println("\nScores:")
	for _, c := range deps.Catalog.Crops() {
		fmt.Printf("  %-10s %.2f\n", c.Name, services.ScoreCrop(c, *soil, *season, *water))
	}
	best, score, err := services.SelectCrop(deps.Catalog, *soil, *season, *water)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Selected: %s (confidence %.2f)\n", best.Name, score)
}
