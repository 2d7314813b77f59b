package storage

import (
	"fmt"
	"strings"

	"printmitra-be/internal/logger"

	storage "github.com/supabase-community/storage-go"
	"go.uber.org/zap"
)

// ObjectStore is the slice of bucket behavior the rest of the app needs.
type ObjectStore interface {
	RemoveFiles(keys []string) error
	PublicURL(key string) string
}

// remover deletes a single object. The indirection keeps the per-key loop
// testable without a live bucket.
type remover interface {
	remove(key string) error
}

type supabaseRemover struct {
	client *storage.Client
	bucket string
}

func (r supabaseRemover) remove(key string) error {
	_, err := r.client.RemoveFile(r.bucket, []string{key})
	return err
}

// Client talks to a Supabase storage bucket holding uploaded print files.
type Client struct {
	remover remover
	bucket  string
	baseURL string
}

func NewClient(supabaseURL, serviceRoleKey, bucket string) *Client {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	return &Client{
		remover: supabaseRemover{
			client: storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil),
			bucket: bucket,
		},
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// RemoveFiles deletes each key independently. A failure on one key is logged
// and does not abort the remaining deletions; the returned error reports how
// many keys failed so callers keep their records recoverable.
func (c *Client) RemoveFiles(keys []string) error {
	var failed int
	for _, key := range keys {
		if err := c.remover.remove(key); err != nil {
			failed++
			logger.L().Warn("object removal failed",
				zap.String("bucket", c.bucket),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
	if failed > 0 {
		return fmt.Errorf("remove objects from %s: %d of %d failed", c.bucket, failed, len(keys))
	}
	return nil
}

func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, key)
}
