// Package main implements the gones NES emulator executable.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"gones/internal/app"
	"gones/internal/consoleerr"
	"gones/internal/version"
)

func main() {
	defer glog.Flush()

	var (
		romFile    = flag.String("rom", "", "Path to NES ROM file")
		configFile = flag.String("config", "", "Path to configuration file")
		backend    = flag.String("backend", "", "Override the configured video backend (ebiten, sdl2, headless)")
		scale      = flag.Int("scale", 0, "Override the configured window scale")
		nogui      = flag.Bool("nogui", false, "Run without a presentation backend")
		showVer    = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVer {
		fmt.Println(version.GetDetailedVersion())
		return
	}

	configPath := *configFile
	if configPath == "" {
		configPath = app.GetDefaultConfigPath()
	}

	application, err := app.NewApplication(configPath)
	if err != nil {
		glog.Fatalf("create application: %v", err)
	}

	cfg := application.Config()
	if *backend != "" {
		cfg.Video.Backend = *backend
	}
	if *scale > 0 {
		cfg.Window.Scale = *scale
	}
	if *nogui {
		cfg.Video.Backend = "headless"
	}

	if *romFile != "" {
		if err := application.LoadROM(*romFile); err != nil {
			os.Exit(teardown(err))
		}
	}

	os.Exit(teardown(application.Run()))
}

// teardown converts the core's error taxonomy (§7) into a process exit
// code: each failure kind's bit, bitwise OR'd, so a multi-cause shutdown
// never hides one cause behind another. A nil error exits 0.
func teardown(err error) int {
	if err == nil {
		return 0
	}
	glog.Errorf("gones exiting: %v", err)
	var bits consoleerr.ExitBit
	for _, kind := range []error{
		consoleerr.ErrUnimplementedOpcode,
		consoleerr.ErrUnimplementedMapper,
		consoleerr.ErrBadCartridgeImage,
		consoleerr.ErrBackendInitFailed,
	} {
		if errors.Is(err, kind) {
			bits |= consoleerr.Bit(kind)
		}
	}
	if bits == 0 {
		return 1
	}
	return int(bits)
}
