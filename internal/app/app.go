package app

import (
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"

	"gones/internal/cartridge"
	"gones/internal/console"
	"gones/internal/consoleerr"
	"gones/internal/controller"
	"gones/internal/graphics"
)

// presentationBackend is what cmd/gones needs from whichever graphics
// backend it selects: the PPU/controller contracts (satisfied structurally,
// so this interface only exists to let Application treat both backends
// uniformly) plus the two operations Application itself drives.
type presentationBackend interface {
	console.PPUBackend
	controller.Backend
	SetVideoProcessor(*graphics.VideoProcessor)
	SetFrameStepper(func() error)
	Run() error
}

// Application wires a Console to a selected presentation backend and a
// loaded cartridge, and owns the process-level config/CLI surface (§10).
type Application struct {
	config  *Config
	console *console.Console
	backend presentationBackend

	romPath string
}

// NewApplication loads configuration from configPath (creating it with
// defaults if absent) and constructs the console core. No cartridge is
// attached and no presentation backend is created until LoadROM and Run.
func NewApplication(configPath string) (*Application, error) {
	cfg := NewConfig()
	if configPath != "" {
		if err := cfg.LoadFromFile(configPath); err != nil {
			glog.Errorf("could not load config from %s, using defaults: %v", configPath, err)
		}
	}
	return &Application{config: cfg, console: console.New()}, nil
}

// Config returns the application's loaded configuration.
func (app *Application) Config() *Config { return app.config }

// LoadROM reads an iNES image from path and inserts it into the console,
// resetting the CPU onto its reset vector (§6).
func (app *Application) LoadROM(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", consoleerr.ErrBadCartridgeImage, path, err)
	}
	defer f.Close()

	cart, err := cartridge.LoadReader(f)
	if err != nil {
		return fmt.Errorf("%w: %w", consoleerr.ErrBadCartridgeImage, err)
	}

	app.romPath = path
	app.console.InsertCartridge(cart)
	return nil
}

// selectBackend builds the presentation backend named by config (§11):
// "ebiten" and "sdl2" are the two wired ConsoleBackend implementations,
// "headless" runs with no presentation at all.
func (app *Application) selectBackend() presentationBackend {
	title := "gones"
	if app.romPath != "" {
		title = "gones - " + app.romPath
	}

	var b presentationBackend
	switch app.config.Video.Backend {
	case "sdl2":
		b = graphics.NewSDLBackend(title, app.config.Window.Scale)
	case "headless":
		return nil
	default:
		b = graphics.NewEbitenBackend(title, app.config.Window.Scale)
	}

	b.SetVideoProcessor(graphics.NewVideoProcessor(
		app.config.Video.Brightness, app.config.Video.Contrast, app.config.Video.Saturation))
	return b
}

// stepFrame drives the console forward through exactly one completed PPU
// frame, stopping early and propagating the core's error if the CPU halts
// on an unimplemented opcode (§7).
func (app *Application) stepFrame() error {
	target := app.console.FrameCount() + 1
	for app.console.FrameCount() < target {
		if err := app.console.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Run starts emulation. For the ebiten/sdl2 backends this opens a window
// and blocks until the player quits or the core halts; the backend's own
// display loop calls back into stepFrame once per tick, so there is no
// timing code here beyond what "headless" needs for itself. Headless mode
// paces itself at roughly 60Hz and logs progress via glog rather than
// presenting anything.
func (app *Application) Run() error {
	app.backend = app.selectBackend()

	if app.backend == nil {
		return app.runHeadless()
	}

	app.console.AddPPUBackend(app.backend)
	app.console.AddControllerBackend(1, app.backend)
	app.backend.SetFrameStepper(app.stepFrame)

	if err := app.backend.Run(); err != nil {
		glog.Errorf("backend run failed: %v", err)
		return err
	}
	return nil
}

// runHeadless drives the console without any presentation backend, for
// the -nogui CLI path and for CI environments with no display.
func (app *Application) runHeadless() error {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	var frames uint64
	for range ticker.C {
		if err := app.stepFrame(); err != nil {
			return err
		}
		frames++
		if frames%300 == 0 {
			glog.Infof("headless: %d frames, %d CPU cycles", frames, app.console.CPUCycles())
		}
	}
	return nil
}
