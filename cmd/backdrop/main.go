// Command backdrop opens the animated landing page described by a YAML
// config file. BACKDROP_* environment variables override file values.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/phanxgames/backdrop"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "log per-frame draw stats")
	scriptPath := flag.String("script", "", "path to a YAML pointer script to play")
	shotDir := flag.String("screenshots", "screenshots", "directory for script screenshots")
	flag.Parse()

	cfg, err := backdrop.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	backdrop.SetLogger(backdrop.NewLogger(os.Stderr, cfg.LogLevel))

	// Relative asset paths resolve against the config file's directory.
	baseDir := "."
	if *configPath != "" {
		baseDir = filepath.Dir(*configPath)
	}

	scene := backdrop.NewScene()
	scene.SetDebugMode(*debug)
	scene.ScreenshotDir = *shotDir
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		sc, err := backdrop.LoadScript(data)
		if err != nil {
			log.Fatal(err)
		}
		scene.SetScript(sc)
	}
	page := backdrop.BuildPage(scene, cfg, backdrop.NewAssetLoader(baseDir), nil)
	backdrop.Logger().Info("page ready",
		"title", cfg.Title,
		"images", len(cfg.Images),
		"quotes", page.Quotes.Len(),
		"shapes", len(page.Background),
		"reducedMotion", cfg.ReducedMotion,
	)

	if err := backdrop.Run(scene, backdrop.RunConfig{
		Title:    cfg.Title,
		Width:    cfg.Width,
		Height:   cfg.Height,
		OnResize: page.Resize,
	}); err != nil {
		log.Fatal(err)
	}
}
