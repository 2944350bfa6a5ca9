// Command uci runs the engine as a UCI-protocol process communicating over
// stdin/stdout, the standard way a GUI (or a test harness) drives it.
package main

import (
	"flag"
	"os"

	"github.com/op/go-logging"

	"chesscore/config"
	"chesscore/engine"
	"chesscore/uciloop"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (optional)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logging.MustGetLogger("chesscore").Fatalf("loading config %s: %v", *configPath, err)
		}
		cfg = loaded
	}

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	level, err := logging.LogLevel(cfg.LogLevel)
	if err != nil {
		level = logging.WARNING
	}
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(level, "")
	engine.SetLogBackend(leveled)

	uciloop.NewLoop(os.Stdin, os.Stdout, cfg).Run()
}
