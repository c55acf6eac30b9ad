package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gtonic/apibridge/pkg/catalog"
	"github.com/gtonic/apibridge/pkg/rest"
)

// Resolver maps operation identifiers to their descriptors.
type Resolver interface {
	Operation(id string) (catalog.Operation, bool)
	Operations() []catalog.Operation
}

// Dispatcher turns one operation call into one HTTP request. It holds no
// per-call state and is safe for concurrent use.
type Dispatcher struct {
	client *rest.Client

	catalog Resolver

	header http.Header
}

type Option func(*Dispatcher)

// WithHeader attaches a caller-mandated header to every request. These
// headers win over computed ones (content type included).
func WithHeader(name, value string) Option {
	return func(d *Dispatcher) {
		d.header.Set(name, value)
	}
}

func New(catalog Resolver, client *rest.Client, options ...Option) *Dispatcher {
	d := &Dispatcher{
		client: client,

		catalog: catalog,

		header: http.Header{},
	}

	for _, o := range options {
		o(d)
	}

	return d
}

// Call resolves the operation, classifies the arguments and performs one
// request. It returns the normalized response, a *rest.Error when the
// endpoint answered with a fault, or the untouched transport error when
// no response exists. Unknown operations fail before any network attempt.
func (d *Dispatcher) Call(ctx context.Context, operationID string, args map[string]any) (*rest.Response, error) {
	op, ok := d.catalog.Operation(operationID)

	if !ok {
		return nil, fmt.Errorf("unknown operation %q", operationID)
	}

	req, err := Classify(op, args)

	if err != nil {
		return nil, err
	}

	path, query := resolvePath(op.Path, req.URLParams)

	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var contentType string
	var body io.Reader

	switch {
	case req.Form != nil:
		contentType = req.Form.ContentType
		body = bytes.NewReader(req.Form.Data)

	case len(req.Body) > 0:
		data, err := json.Marshal(req.Body)

		if err != nil {
			return nil, err
		}

		contentType = "application/json"
		body = bytes.NewReader(data)
	}

	return d.client.Execute(ctx, op.Method, path, contentType, d.header, body)
}

func resolvePath(path string, params map[string]any) (string, url.Values) {
	query := url.Values{}

	for name, value := range params {
		placeholder := "{" + name + "}"

		if strings.Contains(path, placeholder) {
			path = strings.ReplaceAll(path, placeholder, url.PathEscape(stringValue(value)))
			continue
		}

		switch v := value.(type) {
		case []string:
			for _, item := range v {
				query.Add(name, item)
			}

		case []any:
			for _, item := range v {
				query.Add(name, stringValue(item))
			}

		default:
			query.Set(name, stringValue(value))
		}
	}

	return path, query
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v

	case bool:
		return strconv.FormatBool(v)

	case int:
		return strconv.Itoa(v)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case nil:
		return ""
	}

	data, _ := json.Marshal(value)
	return string(data)
}
