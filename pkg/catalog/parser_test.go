package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtonic/apibridge/pkg/catalog"
)

func TestLoad_v3_file(t *testing.T) {
	t.Parallel()

	doc, err := catalog.Load("testdata/api.yaml")
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.NotNil(t, doc.Paths.Find("/pages"))
}

func TestLoad_v2_file_converted(t *testing.T) {
	t.Parallel()

	doc, err := catalog.Load("testdata/api_v2.yaml")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc.OpenAPI, "3."))

	c, err := catalog.FromDocument(doc)
	require.NoError(t, err)

	o, ok := c.Operation("listPages")
	require.True(t, ok)

	assert.Equal(t, "GET", o.Method)
	assert.Equal(t, "/pages", o.Path)

	require.Len(t, o.Parameters, 1)
	assert.Equal(t, "cursor", o.Parameters[0].Name)
	assert.Equal(t, catalog.InQuery, o.Parameters[0].In)
}

func TestLoad_url(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile("testdata/api.yaml")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	t.Cleanup(srv.Close)

	doc, err := catalog.Load(srv.URL + "/spec.yaml")
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
}

func TestLoad_url_fault(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := catalog.Load(srv.URL + "/spec.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch OpenAPI document")
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := catalog.Load("testdata/nope.yaml")
	require.Error(t, err)
}

func TestParse_invalid_document(t *testing.T) {
	t.Parallel()

	_, err := catalog.Parse([]byte("not: [valid"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse OpenAPI document")
}

func TestParse_unversioned_document(t *testing.T) {
	t.Parallel()

	_, err := catalog.Parse([]byte(`{"info":{"title":"x","version":"1"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing openapi version")
	assert.Contains(t, err.Error(), "missing swagger version")
}
