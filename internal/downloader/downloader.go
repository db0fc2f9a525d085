package downloader

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blobfetch/internal/models"
	"blobfetch/pkg/utils"
)

// Store is the storage capability the Downloader needs.
//
// List must be lazy: it yields objects as pages arrive and stops fetching as
// soon as the consumer stops iterating. Download writes the full content of
// key to localPath, replacing any existing file, and reports the cumulative
// number of bytes written through onProgress when it is non-nil.
type Store interface {
	List(ctx context.Context, prefix string) iter.Seq2[models.RemoteObject, error]
	Download(ctx context.Context, key, localPath string, onProgress func(written int64)) (int64, error)
}

// Tracker receives transfer progress for one object.
type Tracker interface {
	Set64(n int64) error
	Finish() error
}

type Downloader struct {
	store      Store
	out        io.Writer
	logger     *slog.Logger
	newTracker func(name string, size int64) Tracker
}

type Option func(*Downloader)

// WithOutput sets where the per-object "Downloading ..." lines go.
func WithOutput(w io.Writer) Option {
	return func(d *Downloader) {
		d.out = w
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Downloader) {
		d.logger = l
	}
}

// WithProgress enables a Tracker per downloaded object. size is -1 when the
// object size is not known before the transfer.
func WithProgress(newTracker func(name string, size int64) Tracker) Option {
	return func(d *Downloader) {
		d.newTracker = newTracker
	}
}

func New(store Store, opts ...Option) *Downloader {
	d := &Downloader{
		store:  store,
		out:    os.Stdout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes the request sequentially. The first failure stops the run; the
// returned result still counts the objects that completed before it.
func (d *Downloader) Run(ctx context.Context, req models.Request) (*models.DownloadResult, error) {
	startTime := time.Now()
	plan := ResolveScope(req)

	d.logger.Debug("resolved download scope",
		slog.String("container", req.Container),
		slog.String("scope", plan.Scope.String()),
		slog.String("key", plan.Key),
		slog.String("destination", req.Destination))

	result := &models.DownloadResult{
		Container:     req.Container,
		SourcePath:    plan.Key,
		OperationTime: utils.FormatTime(startTime),
	}

	var err error
	if plan.Scope == ScopeSingle {
		err = d.downloadSingle(ctx, plan.Key, req.Destination, result)
	} else {
		err = d.downloadPrefix(ctx, plan.Key, req.Destination, result)
	}

	result.TotalSizeHuman = utils.FormatBytes(result.TotalSizeBytes)
	result.DownloadDuration = time.Since(startTime).String()

	return result, err
}

func (d *Downloader) downloadSingle(ctx context.Context, blobPath, localDir string, result *models.DownloadResult) error {
	localPath, err := SingleLocalPath(localDir, blobPath)
	if err != nil {
		return err
	}

	// An empty destination means the working directory.
	if localDir != "" {
		if err := os.MkdirAll(localDir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", localDir, err)
		}
	}

	return d.fetch(ctx, models.RemoteObject{Name: blobPath, Size: -1}, localPath, result)
}

func (d *Downloader) downloadPrefix(ctx context.Context, prefix, localDir string, result *models.DownloadResult) error {
	for obj, err := range d.store.List(ctx, prefix) {
		if err != nil {
			return fmt.Errorf("failed to list objects under %q: %w", prefix, err)
		}

		if strings.HasSuffix(obj.Name, "/") {
			d.logger.Debug("skipping directory marker", slog.String("name", obj.Name))
			continue
		}

		localPath, err := LocalPath(localDir, prefix, obj.Name)
		if err != nil {
			return err
		}

		dir := filepath.Dir(localPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		if err := d.fetch(ctx, obj, localPath, result); err != nil {
			return err
		}
	}

	return nil
}

func (d *Downloader) fetch(ctx context.Context, obj models.RemoteObject, localPath string, result *models.DownloadResult) error {
	fmt.Fprintf(d.out, "Downloading %s to %s...\n", obj.Name, localPath)

	var onProgress func(int64)
	if d.newTracker != nil {
		tracker := d.newTracker(obj.Name, obj.Size)
		defer tracker.Finish()
		onProgress = func(n int64) {
			_ = tracker.Set64(n)
		}
	}

	written, err := d.store.Download(ctx, obj.Name, localPath, onProgress)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", obj.Name, err)
	}

	d.logger.Debug("object downloaded",
		slog.String("name", obj.Name),
		slog.String("path", localPath),
		slog.Int64("bytes", written))

	result.TotalFiles++
	result.TotalSizeBytes += written

	return nil
}
