package azureblob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blobfetch/config"
	"blobfetch/internal/models"
)

// Well-known Azurite development account.
const (
	azuriteAccountName = "devstoreaccount1"
	azuriteAccountKey  = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

func TestServiceURL(t *testing.T) {
	assert.Equal(t, "https://myaccount.blob.core.windows.net", ServiceURL("myaccount", ""))
	assert.Equal(t, "http://127.0.0.1:10000/devstoreaccount1", ServiceURL("myaccount", "http://127.0.0.1:10000/devstoreaccount1"))
}

func TestNew(t *testing.T) {
	client, err := New(&config.Config{}, models.Request{
		AccountName: azuriteAccountName,
		AccountKey:  azuriteAccountKey,
		Container:   "backups",
	})
	require.NoError(t, err)
	assert.Equal(t, "backups", client.container)
	assert.Contains(t, client.client.URL(), "devstoreaccount1.blob.core.windows.net")
}

func TestNewRejectsMalformedKey(t *testing.T) {
	_, err := New(&config.Config{}, models.Request{
		AccountName: "myaccount",
		AccountKey:  "not base64!",
		Container:   "backups",
	})
	assert.Error(t, err)
}

// Integration test against Azurite. Set BLOBFETCH_INTEGRATION_TEST=true and
// BLOBFETCH_ENDPOINT=http://127.0.0.1:10000/devstoreaccount1 to run it.
func TestListAndDownload(t *testing.T) {
	if os.Getenv("BLOBFETCH_INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test; set BLOBFETCH_INTEGRATION_TEST=true to run")
	}

	ctx := context.Background()
	endpoint := os.Getenv("BLOBFETCH_ENDPOINT")
	containerName := "blobfetch-test"

	cred, err := azblob.NewSharedKeyCredential(azuriteAccountName, azuriteAccountKey)
	require.NoError(t, err)
	raw, err := azblob.NewClientWithSharedKeyCredential(endpoint, cred, nil)
	require.NoError(t, err)

	_, _ = raw.CreateContainer(ctx, containerName, nil)
	t.Cleanup(func() {
		_, _ = raw.DeleteContainer(context.Background(), containerName, nil)
	})

	for _, name := range []string{"logs/a.txt", "logs/sub/b.txt", "other.txt"} {
		_, err := raw.UploadBuffer(ctx, containerName, name, []byte(name), nil)
		require.NoError(t, err)
	}

	client, err := New(&config.Config{Endpoint: endpoint}, models.Request{
		AccountName: azuriteAccountName,
		AccountKey:  azuriteAccountKey,
		Container:   containerName,
	})
	require.NoError(t, err)

	var names []string
	for obj, err := range client.List(ctx, "logs") {
		require.NoError(t, err)
		names = append(names, obj.Name)
	}
	assert.Equal(t, []string{"logs/a.txt", "logs/sub/b.txt"}, names)

	localPath := filepath.Join(t.TempDir(), "a.txt")
	var progress int64
	n, err := client.Download(ctx, "logs/a.txt", localPath, func(written int64) { progress = written })
	require.NoError(t, err)
	assert.Equal(t, int64(len("logs/a.txt")), n)
	assert.Equal(t, n, progress)

	data, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.Equal(t, "logs/a.txt", string(data))
}
