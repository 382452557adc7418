// Snapshot tool - renders the particle scene at a chosen time to a PNG file.
//
// Usage: go run ./cmd/snapshot -time 12.5 -out field.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sniperfx/config"
	"github.com/pthm-cable/sniperfx/renderer"
	"github.com/pthm-cable/sniperfx/scene"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "snapshot.png", "Output PNG path")
	at := flag.Float64("time", 10, "Scene time in seconds to render")
	frames := flag.Int("frames", 600, "Steps used to reach -time (the wave accumulates per step)")
	width := flag.Int("width", 1280, "Render width")
	height := flag.Int("height", 720, "Render height")
	seed := flag.Int64("seed", 1, "Field seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *frames < 1 {
		*frames = 1
	}

	s, err := scene.New(scene.Options{Config: cfg, Seed: *seed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create scene: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	dt := *at / float64(*frames)
	for i := 0; i < *frames; i++ {
		s.Step(dt)
	}
	s.Resize(float64(*width), float64(*height))

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Snapshot")
	defer rl.CloseWindow()

	backdrop := renderer.NewBackdrop(cfg)
	cloud := renderer.NewPointCloud(s.Field(), cfg)

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	backdrop.Clear()
	rl.BeginMode3D(renderer.Camera3D(s.Camera()))
	backdrop.DrawGlow()
	cloud.Draw(s.Camera(), s.Orientation())
	rl.EndMode3D()
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Scene at t=%.2fs rendered to: %s (%dx%d, %d particles)\n", s.Elapsed(), *outPath, *width, *height, s.Field().Count())
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
