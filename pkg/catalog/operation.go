package catalog

// Parameter locations.
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
	InCookie = "cookie"
)

type Parameter struct {
	Name        string
	In          string
	Required    bool
	Description string
}

// Operation describes one callable endpoint of the remote API.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string

	Parameters []Parameter

	// HasBody reports whether the operation declares a request body.
	// Its absence drives the classifier's no-body inference.
	HasBody bool

	// FileParams lists multipart form fields whose schema designates
	// file content (format: binary), in sorted order.
	FileParams []string

	// Schema is a flat JSON schema for tool exposure: declared path and
	// query parameters merged with the request body properties.
	Schema map[string]any
}
