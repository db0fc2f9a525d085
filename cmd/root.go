package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"blobfetch/config"
)

// Execute runs the command line against os.Args. SIGINT and SIGTERM cancel
// an in-flight download.
func Execute(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, newRootCmd(cfg))
}

func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	var cmdErr *Error
	if !errors.As(err, &cmdErr) {
		// cobra reports required flags and positional args without going
		// through the flag error func.
		cmdErr = &Error{Kind: KindParse, Err: err}
	}

	stderr := root.ErrOrStderr()
	if cmdErr.Kind == KindParse {
		fmt.Fprintln(stderr, "Failed to parse arguments:")
		fmt.Fprintf(stderr, "  %v\n\n", cmdErr.Err)
		fmt.Fprint(stderr, root.UsageString())
	} else {
		fmt.Fprintf(stderr, "Error: %v\n", cmdErr.Err)
	}

	return cmdErr
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blobfetch",
		Short: "Download a blob or a whole folder from a storage container",
		Long: `blobfetch downloads a single object, every object under a prefix, or a whole
container to a local directory, recreating the folder structure below the prefix.

Objects whose name ends with "/" are folder markers and are skipped.

Optional settings are read from a .env file or the environment:
  BLOBFETCH_ENDPOINT   service URL override (Azurite, MinIO, ...)
  BLOBFETCH_REGION     S3 region (default us-east-1)
  BLOBFETCH_LOG_LEVEL  debug, info, warn or error (default warn)`,
		Example: `  # Download one file
  blobfetch -a myaccount -k $KEY -c backups -p reports/q1.csv -d ./out

  # Download a folder recursively
  blobfetch -a myaccount -k $KEY -c backups -p logs/2024 -r -d ./logs

  # Download the whole container
  blobfetch -a myaccount -k $KEY -c backups -d ./backups

  # Download from an S3 bucket
  blobfetch --backend s3 -a $AWS_ACCESS_KEY_ID -k $AWS_SECRET_ACCESS_KEY -c my-bucket -p data -r -d ./data`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringP("storage-account-key", "k", "", "Storage account key (S3: secret access key)")
	flags.StringP("storage-account-name", "a", "", "Storage account name (S3: access key id)")
	flags.StringP("container", "c", "", "Container name (S3: bucket)")
	flags.StringP("path", "p", "", "Path to a file or 'folder' inside the container; empty downloads the whole container")
	flags.StringP("destination", "d", "", "Local folder where files will be downloaded")
	flags.BoolP("recursive", "r", false, "Download everything under --path instead of a single file")
	flags.String("backend", backendAzure, "Storage backend: azure or s3")
	flags.Bool("progress", false, "Show a progress bar for each file")
	flags.BoolP("verbose", "v", false, "Enable verbose output")
	flags.Int("timeout", 3600, "Timeout in seconds for the whole run")

	for _, name := range []string{"storage-account-key", "storage-account-name", "container", "destination"} {
		_ = rootCmd.MarkFlagRequired(name)
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return parseError(err)
	})

	return rootCmd
}
