package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"achievement-manager/core/loader"
	"achievement-manager/core/logger"
	"achievement-manager/core/middleware/auth"
	"achievement-manager/core/middleware/rayid"
	"achievement-manager/feature/api"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview HTTP server",
	Long: `Starts an HTTP server exposing remote data and dry-run diffs of definitions.
The server never writes local files.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), 0)
	if err != nil {
		return err
	}
	defer a.logger.Sync()
	zap.ReplaceGlobals(a.logger)

	cfg := a.cfg
	a.loader.WithCache(cfg.Remote.CacheSize, cfg.Remote.CacheTTL())

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimit(),
	})

	mgr := loader.NewManager()
	mgr.Register(api.NewFeature(a.sets, a.loader, a.logger))

	// RayID first so every log line below carries it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(a.logger, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Public: []string{"/health"}}))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return err
	}
	a.logger.Info("Loaded features", zap.Strings("features", loaded))

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
		errCh <- app.Listen(cfg.Server.Addr())
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-c:
	}
	a.logger.Info("Shutting down server...")
	return app.Shutdown()
}
