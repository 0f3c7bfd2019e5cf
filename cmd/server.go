package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/truemediaorg/reelrelay/api"
	"github.com/truemediaorg/reelrelay/config"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func init() {
	rootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Runs the reelrelay HTTP server",
	Long:  `Runs the reelrelay HTTP server`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.FromEnvfile()
		config.ConfigureLogging(cfg)

		/*
			Graceful shutdown is possible with errgroup + signal.NotifyContext
			NotifyContext returns a context that will close on OS signals to terminate the process
			errgroup uses that context, and also closes it in case a goroutine errors out
		*/
		ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer done()
		g, gCtx := errgroup.WithContext(ctx)

		registry := promclient.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		relay, err := newRelay(gCtx, cfg, registry)
		if err != nil {
			log.Fatalf("error initializing relay: %v", err)
		}

		server := api.NewServer(cfg.ListenPort, registry, api.NewDownloadHandler(relay))

		g.Go(func() error {
			defer log.Info("exiting server")
			return server.Start()
		})
		// ...and shut down the server if the process needs to terminate
		g.Go(func() error {
			<-gCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Stop(shutdownCtx)
		})

		if err = g.Wait(); err != nil {
			log.Errorf("caught error: %v", err)
		}
	},
}
