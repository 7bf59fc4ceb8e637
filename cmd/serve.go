package cmd

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/fiscalpoint/sped-report-converter/internal/api"
	"github.com/fiscalpoint/sped-report-converter/internal/config"
	"github.com/fiscalpoint/sped-report-converter/internal/logger"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	log := logger.New(logLevel(cfg.LogLevel))

	addr := cfg.Listen
	if listenAddr != "" {
		addr = listenAddr
	}

	app := fiber.New(fiber.Config{
		AppName: "sped-report-converter",
		// The decoder enforces the per-run byte limit too; this bound
		// stops oversized bodies before they are buffered.
		BodyLimit: bodyLimit(cfg.MaxUploadBytes),
	})
	api.NewHandler(cfg, log).Register(app)

	log.Info().Str("addr", addr).Msg("starting HTTP API")
	return app.Listen(addr)
}

// bodyLimit maps the configured upload cap to Fiber's BodyLimit. Zero
// means no cap, which Fiber would replace with its own 4 MB default, so
// it becomes an effectively unbounded limit instead.
func bodyLimit(maxBytes int64) int {
	if maxBytes > 0 {
		return int(maxBytes)
	}
	return math.MaxInt32
}
