package azureblob

import (
	"context"
	"fmt"
	"iter"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	appConfig "blobfetch/config"
	"blobfetch/internal/models"
)

// Client reads blobs from a single container.
type Client struct {
	client    *azblob.Client
	container string
}

// ServiceURL is the blob endpoint for an account unless endpoint overrides it.
func ServiceURL(accountName, endpoint string) string {
	if endpoint != "" {
		return endpoint
	}
	return fmt.Sprintf("https://%s.blob.core.windows.net", accountName)
}

func New(cfg *appConfig.Config, req models.Request) (*Client, error) {
	cred, err := azblob.NewSharedKeyCredential(req.AccountName, req.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(ServiceURL(req.AccountName, cfg.Endpoint), cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	return &Client{
		client:    client,
		container: req.Container,
	}, nil
}

// List pages through the flat listing of prefix. A page is only requested
// once the previous one has been consumed.
func (c *Client) List(ctx context.Context, prefix string) iter.Seq2[models.RemoteObject, error] {
	return func(yield func(models.RemoteObject, error) bool) {
		pager := c.client.NewListBlobsFlatPager(c.container, &azblob.ListBlobsFlatOptions{
			Prefix: to.Ptr(prefix),
		})

		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				yield(models.RemoteObject{}, fmt.Errorf("failed to list blobs: %w", err))
				return
			}
			if page.Segment == nil {
				continue
			}

			for _, item := range page.Segment.BlobItems {
				if item == nil || item.Name == nil {
					continue
				}
				obj := models.RemoteObject{Name: *item.Name, Size: -1}
				if item.Properties != nil && item.Properties.ContentLength != nil {
					obj.Size = *item.Properties.ContentLength
				}
				if !yield(obj, nil) {
					return
				}
			}
		}
	}
}

// Download writes the blob to localPath, truncating any existing file. On
// failure the partially written file is left in place.
func (c *Client) Download(ctx context.Context, key, localPath string, onProgress func(int64)) (int64, error) {
	file, err := os.Create(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", localPath, err)
	}
	defer file.Close()

	opts := &azblob.DownloadFileOptions{}
	if onProgress != nil {
		opts.Progress = onProgress
	}

	n, err := c.client.DownloadFile(ctx, c.container, key, file, opts)
	if err != nil {
		return n, fmt.Errorf("failed to download blob: %w", err)
	}

	return n, file.Close()
}
