package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtonic/apibridge/pkg/config"
)

func write(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestParse_yaml(t *testing.T) {
	t.Parallel()

	path := write(t, "config.yaml", `
spec: ./api.yaml
url: https://api.example.com
bearer: secret
headers:
  X-Api-Version: "2022-06-28"
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "./api.yaml", cfg.Spec)
	assert.Equal(t, "https://api.example.com", cfg.URL)
	assert.Equal(t, "secret", cfg.Bearer)
	assert.Equal(t, "2022-06-28", cfg.Headers["X-Api-Version"])
}

func TestParse_json(t *testing.T) {
	t.Parallel()

	path := write(t, "config.json", `{"spec":"./api.json","url":"https://api.example.com","username":"u","password":"p"}`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "./api.json", cfg.Spec)
	assert.Equal(t, "u", cfg.Username)
	assert.Equal(t, "p", cfg.Password)
}

func TestParse_invalid(t *testing.T) {
	t.Parallel()

	path := write(t, "config.yaml", "{{nope")

	_, err := config.Parse(path)
	require.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("APIBRIDGE_SPEC", "./api.yaml")
	t.Setenv("APIBRIDGE_URL", "https://api.example.com")
	t.Setenv("APIBRIDGE_BEARER", "secret")
	t.Setenv("APIBRIDGE_HEADERS", "X-Api-Version=2022-06-28, X-Tenant=t1")

	cfg := config.FromEnv()

	assert.Equal(t, "./api.yaml", cfg.Spec)
	assert.Equal(t, "https://api.example.com", cfg.URL)
	assert.Equal(t, "secret", cfg.Bearer)
	assert.Equal(t, map[string]string{
		"X-Api-Version": "2022-06-28",
		"X-Tenant":      "t1",
	}, cfg.Headers)
}

func TestMerge_overlay_wins(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Spec:   "./file.yaml",
		URL:    "https://file.example.com",
		Bearer: "file-token",

		Headers: map[string]string{"X-A": "file"},
	}

	cfg.Merge(&config.Config{
		URL: "https://flag.example.com",

		Headers: map[string]string{"X-A": "flag", "X-B": "flag"},
	})

	assert.Equal(t, "./file.yaml", cfg.Spec)
	assert.Equal(t, "https://flag.example.com", cfg.URL)
	assert.Equal(t, "file-token", cfg.Bearer)
	assert.Equal(t, "flag", cfg.Headers["X-A"])
	assert.Equal(t, "flag", cfg.Headers["X-B"])
}

func TestMerge_empty_overlay_keeps_values(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{URL: "https://api.example.com"}
	cfg.Merge(&config.Config{})
	cfg.Merge(nil)

	assert.Equal(t, "https://api.example.com", cfg.URL)
}
