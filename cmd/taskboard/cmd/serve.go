package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yesaroun/taskboard/internal/auth"
	"github.com/yesaroun/taskboard/internal/config"
	"github.com/yesaroun/taskboard/internal/server"
	"github.com/yesaroun/taskboard/internal/storage"
	"github.com/yesaroun/taskboard/internal/store"
	"github.com/yesaroun/taskboard/internal/views"
	"github.com/yesaroun/taskboard/pkg/logging"
)

// newServeCommand creates the serve command.
func newServeCommand() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Serve starts the taskboard REST API.

The server binds 0.0.0.0:8000 by default and exposes the API under
/api/v2 with /api/v1 served as a compatible alias. Interactive
documentation is available at /docs.`,
		Example: `  taskboard serve
  taskboard serve --port 3000
  HTTP_PORT=9000 taskboard serve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			logging.Configure(cfg.LogLevel, cfg.LogFormat)
			logger := logging.Default()

			st, err := store.Open(cfg.DatabasePath())
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer st.Close()

			uploads, err := storage.New(afero.NewOsFs(), cfg.UploadDir, cfg.UploadMaxBytes)
			if err != nil {
				return err
			}

			recorder, err := views.NewRecorder(st.Views, cfg.ViewWorkers)
			if err != nil {
				return err
			}

			tokens := auth.NewTokenManager(cfg.SecretKey, cfg.AccessTokenTTL())

			srvCfg := server.DefaultConfig()
			srvCfg.Host = cfg.Host
			srvCfg.Port = cfg.Port
			srvCfg.CORSEnabled = cfg.CORSEnabled
			srvCfg.CORSOrigins = cfg.CORSOrigins
			srvCfg.RateLimit = cfg.RateLimit
			srvCfg.CacheTTL = cfg.CacheTTL
			srvCfg.ReadTimeout = cfg.ReadTimeout
			srvCfg.WriteTimeout = cfg.WriteTimeout
			srvCfg.IdleTimeout = cfg.IdleTimeout

			srv := server.New(st, tokens, uploads, recorder, logger, srvCfg)

			logger.Info().
				Str("environment", cfg.Environment).
				Str("addr", srv.Addr()).
				Str("docs", "/docs").
				Msg("Starting taskboard API")

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "bind address")
	cmd.Flags().IntVar(&port, "port", 8000, "listen port")

	return cmd
}
