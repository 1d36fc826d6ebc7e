package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/config"
)

func testStore(baseURL string) *Supabase {
	return NewSupabase(config.SupabaseConfig{
		URL:     baseURL,
		Key:     "service-key",
		Bucket:  "imagens-produtos",
		Timeout: 2 * time.Second,
	})
}

func TestUpload(t *testing.T) {
	var gotPath, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		require.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"Key":"ok"}`))
	}))
	defer srv.Close()

	url, err := testStore(srv.URL).Upload(context.Background(), []byte("png-bytes"), "bolsa.png", "image/png")
	require.NoError(t, err)

	assert.Equal(t, "image/png", gotContentType)
	assert.True(t, strings.HasPrefix(gotPath, "/storage/v1/object/imagens-produtos/media/produtos/"), gotPath)
	assert.True(t, strings.HasSuffix(gotPath, ".png"), gotPath)
	assert.Equal(t, srv.URL+"/storage/v1/object/public"+strings.TrimPrefix(gotPath, "/storage/v1/object"), url)
}

func TestUploadKeysDoNotCollide(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := testStore(srv.URL)
	_, err := store.Upload(context.Background(), []byte("a"), "same.png", "image/png")
	require.NoError(t, err)
	_, err = store.Upload(context.Background(), []byte("b"), "same.png", "image/png")
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.NotEqual(t, paths[0], paths[1])
}

func TestUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"quota exceeded"}`))
	}))
	defer srv.Close()

	_, err := testStore(srv.URL).Upload(context.Background(), []byte("a"), "x.png", "image/png")
	assert.ErrorIs(t, err, ErrUpload)
}

func TestUploadWithoutExtension(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := testStore(srv.URL).Upload(context.Background(), []byte("a"), "noext", "application/octet-stream")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(gotPath, ".bin"), gotPath)
}
