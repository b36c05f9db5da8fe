// Command tour opens a window and flies a camera along a looping path through the points of
// interest in a tour file. Scrolling moves along the path; press and hold (or O) to orbit.
package main

import (
	"flag"
	"log"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-tour/config"
	"github.com/Carmen-Shannon/oxy-tour/engine"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/navigation"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
)

const navigatorScene = 0

func main() {
	tourPath := flag.String("tour", "cmd/tour/tour.yaml", "path to a .yaml or .toml tour file")
	profiling := flag.Bool("profile", false, "log tick and memory statistics every second")
	tickRate := flag.Float64("tps", 60, "engine ticks per second")
	watch := flag.Bool("watch", true, "reload the tour when the file changes")
	flag.Parse()

	cfg, err := config.LoadTourConfig(*tourPath)
	if err != nil {
		log.Fatalf("[Tour] %v", err)
	}

	// ── Window ──────────────────────────────────────────────────────────
	windowOptions := []window.WindowBuilderOption{window.WithWheelStep(cfg.WheelStep())}
	if cfg.Window.Title != "" {
		windowOptions = append(windowOptions, window.WithTitle(cfg.Window.Title))
	}
	if cfg.Window.Width > 0 {
		windowOptions = append(windowOptions, window.WithWidth(cfg.Window.Width))
	}
	if cfg.Window.Height > 0 {
		windowOptions = append(windowOptions, window.WithHeight(cfg.Window.Height))
	}
	win := window.NewWindow(windowOptions...)

	// The surface is created so the platform compositor owns the client area; nothing draws
	// into it yet.
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()
	if desc := win.SurfaceDescriptor(); desc != nil {
		surface := instance.CreateSurface(desc)
		defer surface.Release()
	}

	// ── Navigator ───────────────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithNear(0.05),
		camera.WithFar(200),
	)
	navOptions := append(cfg.NavigatorOptions(),
		navigation.WithInputTargets(win, win),
		navigation.WithViewport(win.Width(), win.Height()),
		navigation.WithModeListener(func(mode navigation.Mode, orbitActive bool) {
			log.Printf("[Tour] mode %s (orbit active: %t)", mode, orbitActive)
		}),
		navigation.WithPOIListener(func(index int, poi navigation.POI) {
			log.Printf("[Tour] arrived at %d %q", index, poi.Label)
			win.SetTitle(cfg.Name + " · " + poi.Label)
		}),
		navigation.WithTapHandler(func(x, y float32) {
			log.Printf("[Tour] tap at %.0f,%.0f", x, y)
		}),
	)
	nav, err := navigation.NewNavigator(cam, win, cfg.Stops(), navOptions...)
	if err != nil {
		log.Fatalf("[Tour] %v", err)
	}

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithTickRate(*tickRate),
		engine.WithProfiling(*profiling),
	)
	eng.AddScene(navigatorScene, nav)

	if *watch {
		watcher, err := config.NewWatcher(*tourPath)
		if err != nil {
			log.Printf("[Tour] tour reload disabled: %v", err)
		} else {
			defer watcher.Close()
			eng.SetTickCallback(func(float32) {
				select {
				case next := <-watcher.Updates():
					if err := nav.SetTour(next.Stops(), next.LensRange(), next.PathOptions()...); err != nil {
						log.Printf("[Tour] reload rejected: %v", err)
						return
					}
					log.Printf("[Tour] reloaded %d points of interest with path and lens settings", len(next.POIs))
					if sections := cfg.RestartSections(next); len(sections) > 0 {
						log.Printf("[Tour] changes to %s take effect on restart", strings.Join(sections, ", "))
					}
					cfg.POIs, cfg.Path, cfg.Lens = next.POIs, next.Path, next.Lens
				case err := <-watcher.Errors():
					log.Printf("[Tour] reload failed: %v", err)
				default:
				}
			})
		}
	}

	eng.Run()
}
