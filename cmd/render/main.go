// Command render rasterizes a profile's stages into per-stage, comparison,
// and process-strip images.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"draw-pipe/internal/profile"
	"draw-pipe/internal/render"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	profilePath := flag.String("profile", "", "Path to a profile JSON file")
	outDir := flag.String("out", ".", "Output directory")
	format := flag.String("format", "png", "Image format: png or tiff")
	size := flag.Int("size", 800, "Image side length in pixels")
	markers := flag.Bool("markers", true, "Draw landmark markers")
	padding := flag.Float64("padding", 0.1, "Fractional padding around the outlines")
	flag.Parse()

	if *profilePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: render -profile file.json [-out dir] [-format png|tiff] [-size N] [-markers] [-padding F]")
		os.Exit(1)
	}
	if *format != "png" && *format != "tiff" {
		fmt.Fprintf(os.Stderr, "Unsupported format %q\n", *format)
		os.Exit(1)
	}

	data, err := os.ReadFile(*profilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read profile: %v\n", err)
		os.Exit(1)
	}
	var payload profile.ProfilePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse profile: %v\n", err)
		os.Exit(1)
	}
	if err := payload.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid profile: %v\n", err)
		os.Exit(1)
	}
	pipes, err := payload.ToPipes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid profile: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output dir: %v\n", err)
		os.Exit(1)
	}

	opts := render.DefaultOptions()
	opts.Size = *size
	opts.Markers = *markers
	opts.Padding = *padding

	for i, p := range pipes {
		name := filepath.Join(*outDir, fmt.Sprintf("stage_%02d.%s", i+1, *format))
		if err := render.WriteImage(name, render.RenderPipe(p, opts)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", name, err)
			os.Exit(1)
		}
		log.Printf("wrote %s", name)
	}

	for i := 0; i+1 < len(pipes); i++ {
		name := filepath.Join(*outDir, fmt.Sprintf("transition_%02d_%02d.%s", i+1, i+2, *format))
		if err := render.WriteImage(name, render.RenderComparison(pipes[i], pipes[i+1], opts)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", name, err)
			os.Exit(1)
		}
		log.Printf("wrote %s", name)
	}

	if len(pipes) > 0 {
		name := filepath.Join(*outDir, "process."+*format)
		if err := render.WriteImage(name, render.RenderProcess(pipes, opts)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", name, err)
			os.Exit(1)
		}
		log.Printf("wrote %s", name)
	}
}
