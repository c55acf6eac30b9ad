package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/invopop/yaml"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
)

// Load reads an OpenAPI document from a local file or http(s) URL and
// decodes it, converting v2 documents to v3.
func Load(path string) (*openapi3.T, error) {
	data, err := read(path)

	if err != nil {
		return nil, err
	}

	return Parse(data)
}

func read(path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := http.DefaultClient.Get(path)

		if err != nil {
			return nil, err
		}

		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("fetch OpenAPI document: %s", resp.Status)
		}

		return io.ReadAll(resp.Body)
	}

	return os.ReadFile(path)
}

// Parse decodes an OpenAPI document from JSON or YAML bytes. Documents
// without an "openapi" version are retried as v2 and converted.
func Parse(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	doc, v3Err := loader.LoadFromData(data)

	if v3Err == nil && doc.OpenAPI == "" {
		v3Err = errors.New("missing openapi version")
		doc = nil
	}

	if doc == nil {
		var v2Err error

		doc, v2Err = parseV2(loader, data)

		if v2Err != nil {
			return nil, fmt.Errorf("parse OpenAPI document: %w", errors.Join(v3Err, v2Err))
		}
	}

	doc.InternalizeRefs(context.Background(), nil)

	return doc, nil
}

func parseV2(loader *openapi3.Loader, data []byte) (*openapi3.T, error) {
	var doc openapi2.T

	if err := json.Unmarshal(data, &doc); err != nil {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}

	if doc.Swagger == "" {
		return nil, errors.New("missing swagger version")
	}

	return openapi2conv.ToV3WithLoader(&doc, loader, nil)
}
