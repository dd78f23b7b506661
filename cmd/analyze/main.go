// Command analyze runs the draw-process analysis over a profile file or a
// named catalog template and prints the metric series as a text table.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"draw-pipe/internal/pipe"
	"draw-pipe/internal/process"
	"draw-pipe/internal/profile"
	"draw-pipe/internal/shape"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	profilePath := flag.String("profile", "", "Path to a profile JSON file")
	templateName := flag.String("template", "", "Name of a catalog template to analyze")
	dataDir := flag.String("data", "templates", "Template data directory")
	flag.Parse()

	if (*profilePath == "") == (*templateName == "") {
		fmt.Fprintln(os.Stderr, "Usage: analyze -profile file.json | -template NAME [-data DIR]")
		os.Exit(1)
	}

	pipes, err := loadPipes(*profilePath, *templateName, *dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load process: %v\n", err)
		os.Exit(1)
	}
	log.Printf("analyzing %d stages", len(pipes))

	if err := printAnalysis(pipes); err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}
}

func loadPipes(profilePath, templateName, dataDir string) ([]pipe.Pipe, error) {
	if profilePath != "" {
		data, err := os.ReadFile(profilePath)
		if err != nil {
			return nil, err
		}
		var payload profile.ProfilePayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", profilePath, err)
		}
		if err := payload.Validate(); err != nil {
			return nil, fmt.Errorf("invalid profile %s: %w", profilePath, err)
		}
		return payload.ToPipes()
	}

	templates, err := profile.NewCatalog(dataDir).Templates()
	if err != nil {
		return nil, err
	}
	stages, ok := templates[templateName]
	if !ok {
		names := make([]string, 0, len(templates))
		for name := range templates {
			names = append(names, name)
		}
		return nil, fmt.Errorf("template %q not found (have: %s)", templateName, strings.Join(names, ", "))
	}
	return profile.ProfilePayload{Version: 1, Pipes: stages}.ToPipes()
}

func printAnalysis(pipes []pipe.Pipe) error {
	fmt.Println("Stages:")
	for i, p := range pipes {
		fmt.Printf("  %d: %-14s area=%9.2f  ecc=%6.3f\n",
			i+1, shape.KindOf(p.Outer), p.Area(), p.Eccentricity())
	}

	analysis := process.NewAnalysis(pipes)
	areas, err := analysis.AreaReductions()
	if err != nil {
		return err
	}
	diffs := analysis.EccentricityDiffs()
	thickness, err := analysis.ThicknessReductions()
	if err != nil {
		return err
	}

	if len(areas) == 0 {
		fmt.Println("\nFewer than two stages: no transitions to report.")
		return nil
	}

	fmt.Printf("\n%-12s %12s %12s", "Transition", "Area red.", "Ecc delta")
	for _, name := range shape.LandmarkNames {
		fmt.Printf(" %8s", name)
	}
	fmt.Println()

	for i := range areas {
		fmt.Printf("%2d -> %-6d %11.2f%% %12.3f", i+1, i+2, areas[i]*100, diffs[i])
		for _, r := range thickness[i] {
			fmt.Printf(" %7.2f%%", r*100)
		}
		fmt.Println()
	}
	return nil
}
