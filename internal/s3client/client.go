package s3client

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "blobfetch/config"
	"blobfetch/internal/models"
)

// Client reads objects from one bucket. The account name and key of the
// request are used as access key id and secret access key.
type Client struct {
	s3Client *s3.Client
	bucket   string
}

func New(cfg *appConfig.Config, req models.Request) (*Client, error) {
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     req.AccountName,
				SecretAccessKey: req.AccountKey,
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client
	if cfg.Endpoint != "" {
		s3Client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else {
		s3Client = s3.NewFromConfig(awsConfig)
	}

	return &Client{
		s3Client: s3Client,
		bucket:   req.Container,
	}, nil
}

func (c *Client) List(ctx context.Context, prefix string) iter.Seq2[models.RemoteObject, error] {
	return func(yield func(models.RemoteObject, error) bool) {
		paginator := s3.NewListObjectsV2Paginator(c.s3Client, &s3.ListObjectsV2Input{
			Bucket: aws.String(c.bucket),
			Prefix: aws.String(prefix),
		})

		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				yield(models.RemoteObject{}, fmt.Errorf("failed to list objects: %w", err))
				return
			}

			for _, obj := range page.Contents {
				if obj.Key == nil {
					continue
				}
				if !yield(models.RemoteObject{Name: *obj.Key, Size: aws.ToInt64(obj.Size)}, nil) {
					return
				}
			}
		}
	}
}

func (c *Client) Download(ctx context.Context, key, localPath string, onProgress func(int64)) (int64, error) {
	file, err := os.Create(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", localPath, err)
	}
	defer file.Close()

	var w io.WriterAt = file
	if onProgress != nil {
		w = &progressWriterAt{w: file, onProgress: onProgress}
	}

	downloader := manager.NewDownloader(c.s3Client)
	n, err := downloader.Download(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return n, fmt.Errorf("failed to download from S3: %w", err)
	}

	return n, file.Close()
}

// progressWriterAt reports the running total of bytes written. The manager
// writes parts concurrently; totals are reported under mu so onProgress never
// sees a value lower than one it already received.
type progressWriterAt struct {
	w          io.WriterAt
	onProgress func(int64)

	mu      sync.Mutex
	written int64
}

func (p *progressWriterAt) WriteAt(b []byte, off int64) (int, error) {
	n, err := p.w.WriteAt(b, off)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.written += int64(n)
	p.onProgress(p.written)

	return n, err
}
