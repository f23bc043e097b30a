package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lvillar/galaxypdf/content"
	"github.com/lvillar/galaxypdf/session"
	"github.com/lvillar/galaxypdf/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the Galaxy PDF page over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log, err := loadConfig()
		exitOnError(err)
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		cat, err := content.Load()
		exitOnError(err)

		store := session.NewStore(cfg.NewProcessor(),
			session.WithTTL(cfg.SessionTTL),
			session.WithFeedbackDuration(cfg.FeedbackDuration),
			session.WithLogger(log),
		)

		srv, err := web.New(web.Config{
			Addr:           cfg.Addr,
			MaxUploadBytes: cfg.MaxUploadBytes(),
			AllowAll:       cfg.AllowAllOrigins,
		}, store, cat, log)
		exitOnError(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go store.Run(ctx, time.Minute)
		go func() {
			<-ctx.Done()
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		log.WithField("processing", cfg.Processing).Info("starting galaxypdf")
		exitOnError(srv.Start())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config addr)")
	rootCmd.AddCommand(serveCmd)
}
