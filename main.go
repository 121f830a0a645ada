package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/integrator"
	"github.com/df07/go-progressive-raytracer/pkg/loaders"
	"github.com/df07/go-progressive-raytracer/pkg/renderer"
)

// Config holds the command-line configuration for a render.
type Config struct {
	SceneFile  string
	Output     string
	TileSize   int
	NumWorkers int
	Verbose    bool
	Help       bool
}

func main() {
	config := parseFlags()
	if config.Help {
		showHelp()
		return
	}

	logger := core.NewZapLogger(config.Verbose)

	sceneObj, err := loaders.LoadScene(config.SceneFile)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}

	pathTracerConfig := integrator.DefaultConfig()
	pathTracerConfig.Logger = logger
	integ := integrator.NewPathTracer(pathTracerConfig)

	fmt.Printf("Rendering %q (%dx%d)...\n", config.SceneFile, sceneObj.Camera.Width(), sceneObj.Camera.Height())
	startTime := time.Now()

	buffer, stats := renderer.RenderParallel(sceneObj, integ, config.TileSize, config.NumWorkers, 42)

	renderTime := time.Since(startTime)
	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Samples per pixel: %.1f (range %d - %d)\n", stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	if err := loaders.SaveImage(buffer, config.Output); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", config.Output)
}

func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.SceneFile, "scene", "scenes/default.yaml", "Path to a YAML scene description")
	flag.StringVar(&config.Output, "out", "output/render.png", "Output image path (.png, .jpg, or .bmp)")
	flag.IntVar(&config.TileSize, "tile-size", 32, "Tile size in pixels for parallel rendering")
	flag.IntVar(&config.NumWorkers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.BoolVar(&config.Verbose, "verbose", false, "Enable per-bounce debug logging")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

func showHelp() {
	fmt.Println("go-progressive-raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  raytracer --scene=scenes/cornell.yaml --out=output/cornell.png")
	fmt.Println("  raytracer --scene=scenes/default.yaml --workers=4 --tile-size=64")
}
