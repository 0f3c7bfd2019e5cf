package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/truemediaorg/reelrelay/config"
	"github.com/truemediaorg/reelrelay/model"
)

var outputPath string

func init() {
	resolveCmd.Flags().StringVarP(&outputPath, "output", "o", "", "download the selected video to this file")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <code_or_id_or_url>",
	Short: "Resolves a post reference and prints the video that would be relayed",
	Long: `Resolves a post reference through the media info provider and prints the
selected video variant. With --output the video is downloaded to a file through
the same pipeline the server uses.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnvfile()
		config.ConfigureLogging(cfg)

		ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer done()

		relay, err := newRelay(ctx, cfg, nil)
		if err != nil {
			return err
		}

		ref, err := relay.ValidateRequest(model.ResolutionRequest{Reference: args[0]})
		if err != nil {
			return err
		}
		variant, err := relay.Resolve(ctx, ref)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(variant); err != nil {
			return err
		}
		if outputPath == "" {
			return nil
		}

		media, err := relay.Open(ctx, variant)
		if err != nil {
			return err
		}
		defer media.Close()

		out, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		written, err := io.Copy(out, media)
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
		log.WithField("bytes", written).WithField("path", outputPath).Info("video downloaded")
		return nil
	},
}
