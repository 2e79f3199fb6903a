package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pixelflip/scanboard/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file (default ~/.config/scanboard/config.toml)")
	envFile := flag.String("env-file", "", "dotenv file to load (default .env)")
	environment := flag.String("env", "", "backend environment: production or development")
	apiURL := flag.String("api-url", "", "backend API root, overrides -env")
	prefsPath := flag.String("prefs", "", "display preferences file (default ~/.config/scanboard/prefs.toml)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		EnvFile:     *envFile,
		Environment: *environment,
		APIURL:      *apiURL,
		PrefsPath:   *prefsPath,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "scanboard: %v\n", err)
		return 1
	}
	return 0
}
