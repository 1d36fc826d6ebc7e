package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/config"
)

// ErrUpload marks storage failures (network, auth, quota) so callers can tell
// them apart from validation errors and roll back dependent records.
var ErrUpload = errors.New("storage: upload failed")

// Supabase uploads product images to a Supabase Storage bucket and hands back
// public URLs.
type Supabase struct {
	http    *resty.Client
	baseURL string
	bucket  string
}

func NewSupabase(cfg config.SupabaseConfig) *Supabase {
	return &Supabase{
		http: resty.New().
			SetBaseURL(cfg.URL).
			SetTimeout(cfg.Timeout).
			SetAuthToken(cfg.Key),
		baseURL: strings.TrimRight(cfg.URL, "/"),
		bucket:  cfg.Bucket,
	}
}

// Upload stores the file under a collision-resistant key and returns its
// public URL.
func (s *Supabase) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		ext = "bin"
	}
	key := fmt.Sprintf("media/produtos/%s.%s", uuid.NewString(), ext)

	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Post("/storage/v1/object/" + s.bucket + "/" + key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: status %d: %s", ErrUpload, resp.StatusCode(), resp.String())
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, key), nil
}
