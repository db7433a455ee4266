package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nexabi/toolbridge"
	"github.com/nexabi/toolbridge/internal/config"
	"github.com/nexabi/toolbridge/tools"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP websocket server",
		RunE:  runServe,
	}

	cmd.Flags().String("listen", "", "Listen address (overrides config)")
	cmd.Flags().String("config", "", "Path to toolbridge.yaml")
	cmd.Flags().Bool("verbose", false, "Enable debug logging")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	listen, _ := cmd.Flags().GetString("listen")
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg := config.Default()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	if listen != "" {
		cfg.Listen = listen
	}

	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	reg := toolbridge.NewRegistry(log)
	if err := tools.RegisterBuiltins(reg, cfg.Tools.Disabled...); err != nil {
		return err
	}

	srv := toolbridge.NewServer(cfg.Listen, toolbridge.WithServerLogger(log))
	srv.MountRegistry(reg)

	for _, r := range cfg.Resources {
		res := toolbridge.Resource{
			URI:         r.URI,
			Name:        r.Name,
			Description: r.Description,
			MIMEType:    r.MIMEType,
		}

		if r.Text != "" {
			srv.RegisterResourceContent(res, r.Text)
		} else {
			srv.RegisterResource(res)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting toolbridge server",
		"listen", cfg.Listen,
		"tools", reg.Count(),
		"resources", len(cfg.Resources),
	)

	return srv.Start(ctx)
}
