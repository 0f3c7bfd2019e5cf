package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/truemediaorg/reelrelay/config"
	"github.com/truemediaorg/reelrelay/relay"
	"github.com/truemediaorg/reelrelay/service"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	promclient "github.com/prometheus/client_golang/prometheus"
)

var rootCmd = &cobra.Command{
	Use:   "reelrelay",
	Short: "reelrelay resolves social media posts into downloadable videos",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("No subcommand given")
		cmd.Usage()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Exit with a nonzero exit code if the command fails with an error
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRelay wires the provider client and media fetcher together. Secrets
// Manager is only contacted when no API key is configured directly.
func newRelay(ctx context.Context, cfg config.Config, reg promclient.Registerer) (*relay.Relay, error) {
	var secrets service.SecretsGetter
	if cfg.Provider.ApiKey == "" {
		awsConfig, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		secrets = secretsmanager.NewFromConfig(awsConfig)
	}

	providerService, err := service.NewProviderService(ctx, cfg, secrets)
	if err != nil {
		return nil, err
	}

	var metrics *relay.Metrics
	if reg != nil {
		if metrics, err = relay.NewMetrics("reelrelay", reg); err != nil {
			return nil, err
		}
	}

	return relay.NewRelay(cfg.Relay, providerService, relay.NewHTTPFetcher(), metrics), nil
}
