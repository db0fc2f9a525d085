package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"blobfetch/config"
	"blobfetch/internal/azureblob"
	"blobfetch/internal/downloader"
	"blobfetch/internal/models"
	"blobfetch/internal/s3client"
	"blobfetch/pkg/utils"
)

const (
	backendAzure = "azure"
	backendS3    = "s3"
)

// newStore is swapped out in tests.
var newStore = func(cfg *config.Config, backend string, req models.Request) (downloader.Store, error) {
	switch backend {
	case backendS3:
		client, err := s3client.New(cfg, req)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		client, err := azureblob.New(cfg, req)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func requestFromFlags(cmd *cobra.Command) models.Request {
	flags := cmd.Flags()
	key, _ := flags.GetString("storage-account-key")
	name, _ := flags.GetString("storage-account-name")
	container, _ := flags.GetString("container")
	path, _ := flags.GetString("path")
	destination, _ := flags.GetString("destination")
	recursive, _ := flags.GetBool("recursive")

	return models.Request{
		AccountName: name,
		AccountKey:  key,
		Container:   container,
		Path:        path,
		Destination: destination,
		Recursive:   recursive,
	}
}

func runDownload(cmd *cobra.Command, cfg *config.Config) error {
	backend, _ := cmd.Flags().GetString("backend")
	if backend != backendAzure && backend != backendS3 {
		return parseError(fmt.Errorf("invalid argument %q for \"--backend\" flag: must be %s or %s", backend, backendAzure, backendS3))
	}

	timeout, _ := cmd.Flags().GetInt("timeout")
	if timeout <= 0 {
		return parseError(fmt.Errorf("invalid argument %d for \"--timeout\" flag: must be positive", timeout))
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	showProgress, _ := cmd.Flags().GetBool("progress")

	level := cfg.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	req := requestFromFlags(cmd)

	store, err := newStore(cfg, backend, req)
	if err != nil {
		return runError(err)
	}

	opts := []downloader.Option{
		downloader.WithOutput(cmd.OutOrStdout()),
		downloader.WithLogger(logger),
	}
	if showProgress {
		opts = append(opts, downloader.WithProgress(func(name string, size int64) downloader.Tracker {
			return utils.NewProgressBar(size, name)
		}))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeout)*time.Second)
	defer cancel()

	result, err := downloader.New(store, opts...).Run(ctx, req)
	if err != nil {
		return runError(err)
	}

	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d file(s), %s in %s\n", result.TotalFiles, result.TotalSizeHuman, result.DownloadDuration)
	}

	return nil
}
