package objectstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
)

// Download links live for an hour; upload link TTL is fixed by the storage
// backend.
const downloadTTLSec = 3600

type SignedUpload struct {
	SignedURL string `json:"signedUrl"`
	FilePath  string `json:"filePath"`
}

// Signer produces pre-signed object-storage URLs. The order domain only
// needs these two operations.
type Signer interface {
	SignUpload(ctx context.Context, fileName, contentType string) (*SignedUpload, error)
	SignDownload(ctx context.Context, filePath string) (string, error)
}

type SupabaseSigner struct {
	client *storage_go.Client
	bucket string
}

var _ Signer = (*SupabaseSigner)(nil)

func NewSupabaseSigner(supabaseURL, serviceKey, bucket string) *SupabaseSigner {
	baseURL := strings.TrimRight(supabaseURL, "/")
	client := storage_go.NewClient(baseURL+"/storage/v1", serviceKey, nil)
	return &SupabaseSigner{client: client, bucket: bucket}
}

// SignUpload reserves a unique object path under photos/ and returns a
// short-lived PUT URL for it.
func (s *SupabaseSigner) SignUpload(ctx context.Context, fileName, contentType string) (*SignedUpload, error) {
	ext := ""
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		ext = fileName[i:]
	}
	filePath := fmt.Sprintf("photos/%s%s", uuid.New(), ext)

	resp, err := s.client.CreateSignedUploadUrl(s.bucket, filePath)
	if err != nil {
		return nil, fmt.Errorf("подпись URL загрузки: %w", err)
	}

	return &SignedUpload{SignedURL: resp.Url, FilePath: filePath}, nil
}

func (s *SupabaseSigner) SignDownload(ctx context.Context, filePath string) (string, error) {
	resp, err := s.client.CreateSignedUrl(s.bucket, filePath, downloadTTLSec)
	if err != nil {
		return "", fmt.Errorf("подпись URL скачивания: %w", err)
	}
	return resp.SignedURL, nil
}
