package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/weiguanght/adocsync/document"
	"github.com/weiguanght/adocsync/internal/api"
	"github.com/weiguanght/adocsync/internal/config"
	"github.com/weiguanght/adocsync/internal/log"
	"github.com/weiguanght/adocsync/preview"
	"github.com/weiguanght/adocsync/serializer"
)

func main() {
	serve := flag.Bool("serve", false, "Run the bridge HTTP server instead of converting a file")
	preset := flag.String("preset", presetDefault, "Preset: default|strict|lenient")
	configPath := flag.String("config", "", "YAML config file overriding the preset")
	mapPath := flag.String("map", "", "Write the source map JSON to this file")
	assignIDs := flag.Bool("assign-ids", false, "Assign identities to blocks missing one")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: adocsync [options] <tree-json-file>\n")
		fmt.Fprintf(os.Stderr, "       adocsync -serve [options]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	_ = godotenv.Load()
	log.Set(*debug)
	defer log.Flush()

	cfg, err := resolveConfig(*preset, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	cfg.Logger = log.Get()

	ser, err := serializer.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	if *serve {
		runServer(ser)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	var tree document.Node
	if err := json.Unmarshal(data, &tree); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing tree JSON: %v\n", err)
		os.Exit(1)
	}
	if err := document.Validate(tree); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid tree: %v\n", err)
		os.Exit(1)
	}
	if *assignIDs {
		document.EnsureIdentities(&tree)
	}

	result, err := ser.Serialize(tree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error serializing tree: %v\n", err)
		os.Exit(1)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning.Message)
	}

	if *mapPath != "" {
		mapJSON, err := json.MarshalIndent(result.SourceMap, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding source map: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*mapPath, mapJSON, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing source map: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Print(result.Text)
}

func runServer(ser *serializer.Serializer) {
	logger := log.Get()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	srv := api.NewServer(ser, preview.NewRenderer(), logger, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("starting adocsync server", zap.String("port", cfg.Port))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
