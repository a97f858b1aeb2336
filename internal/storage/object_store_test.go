package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/api/internal/config"
)

func TestParseRef(t *testing.T) {
	bucket, key, ok := ParseRef("storage://portfolio-files/resume/resume-2026.pdf")
	require.True(t, ok)
	assert.Equal(t, "portfolio-files", bucket)
	assert.Equal(t, "resume/resume-2026.pdf", key)

	for _, ref := range []string{
		"",
		"https://example.com/resume.pdf",
		"storage://",
		"storage://bucket-only",
		"storage://bucket/",
		"storage:///no-bucket",
	} {
		_, _, ok := ParseRef(ref)
		assert.Falsef(t, ok, "ref %q must not parse", ref)
	}
}

func TestPublicURL(t *testing.T) {
	store, err := NewObjectStore(config.StorageConfig{
		Endpoint:  "storage.example.com:9000",
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "portfolio-files",
		PublicURL: "https://cdn.example.com/portfolio-files/",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"https://cdn.example.com/portfolio-files/projects/p1/shot.png",
		store.PublicURL("projects/p1/shot.png"))
}

func TestPublicURLFallsBackToEndpoint(t *testing.T) {
	store, err := NewObjectStore(config.StorageConfig{
		Endpoint:  "storage.example.com:9000",
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "portfolio-files",
		UseSSL:    true,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"https://storage.example.com:9000/portfolio-files/projects/p1/shot.png",
		store.PublicURL("projects/p1/shot.png"))
}
