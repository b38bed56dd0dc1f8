// Command alienkitty opens the flow/distortion window.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/phanxgames/alienkitty"
)

var ErrorLogger *log.Logger = log.New(os.Stderr, "ERROR: ", log.Lshortfile)
var InfoLogger *log.Logger = log.New(os.Stdout, "INFO: ", log.Lshortfile)

var (
	FlagConfig     string
	FlagDebug      bool
	FlagScript     string
	FlagScreenshot string
	FlagBackend    string
)

func init() {
	flag.StringVar(&FlagConfig, "config", "", "path to a YAML or JSON config file")
	flag.BoolVar(&FlagDebug, "debug", false, "enable debug logging and the FPS overlay")
	flag.StringVar(&FlagScript, "script", "", "path to a test script to replay")
	flag.StringVar(&FlagScreenshot, "screenshots", "screenshots", "directory for screenshots")
	flag.StringVar(&FlagBackend, "flow", "", "flow backend: gpu or cpu")
}

func loadConfig() (alienkitty.Config, fs.FS, error) {
	if FlagConfig == "" {
		return alienkitty.DefaultConfig(), os.DirFS("."), nil
	}
	dir, name := filepath.Split(FlagConfig)
	if dir == "" {
		dir = "."
	}
	fsys := os.DirFS(dir)
	cfg, err := alienkitty.LoadConfig(fsys, name)
	return cfg, fsys, err
}

func main() {
	flag.Parse()

	cfg, fsys, err := loadConfig()
	if err != nil {
		ErrorLogger.Fatalf("config: %v", err)
	}
	if FlagDebug {
		cfg.Debug = true
	}
	if FlagBackend != "" {
		cfg.Flow.Backend = alienkitty.FlowBackendKind(FlagBackend)
	}

	InitClipboardManager()

	app, err := alienkitty.NewApp(cfg, alienkitty.AppOptions{
		FS: fsys,
		OnContact: func(address string) {
			ClipboardWriteText(address)
			InfoLogger.Printf("contact: %s", address)
		},
	})
	if err != nil {
		ErrorLogger.Fatalf("%v", err)
	}
	app.ScreenshotDir = FlagScreenshot
	InfoLogger.Printf("session %s", app.Session())

	if err := app.Ready(context.Background()); err != nil {
		ErrorLogger.Fatalf("%v", err)
	}

	run := alienkitty.DefaultRunConfig(cfg)
	if FlagScript != "" {
		data, err := os.ReadFile(FlagScript)
		if err != nil {
			ErrorLogger.Fatalf("script: %v", err)
		}
		runner, err := alienkitty.LoadTestScript(data)
		if err != nil {
			ErrorLogger.Fatalf("script: %v", err)
		}
		app.SetTestRunner(runner)
		run.OnFrame = func(a *alienkitty.App, ft alienkitty.FrameTime) error {
			if runner.Done() {
				InfoLogger.Print("script finished")
				return errScriptDone
			}
			return nil
		}
	}

	if err := alienkitty.Run(app, run); err != nil && !errors.Is(err, errScriptDone) {
		ErrorLogger.Fatalf("%v", err)
	}
}

var errScriptDone = errors.New("script done")
