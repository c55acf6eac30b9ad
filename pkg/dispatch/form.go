package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"

	"github.com/gtonic/apibridge/pkg/catalog"
)

// FormPayload is a fully framed multipart/form-data body.
type FormPayload struct {
	ContentType string
	Data        []byte
}

func buildForm(op catalog.Operation, args map[string]any) (*FormPayload, error) {
	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	files := make(map[string]bool, len(op.FileParams))

	for _, name := range op.FileParams {
		files[name] = true
	}

	for _, name := range op.FileParams {
		value, ok := args[name]

		if !ok {
			return nil, fmt.Errorf("missing value for file parameter %q", name)
		}

		paths, err := filePaths(name, value)

		if err != nil {
			return nil, err
		}

		// a sequence of paths yields one form entry per path, all
		// under the same field name
		for _, path := range paths {
			if err := appendFile(w, name, path); err != nil {
				return nil, err
			}
		}
	}

	names := make([]string, 0, len(args))

	for name := range args {
		if files[name] {
			continue
		}

		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if err := w.WriteField(name, fieldValue(args[name])); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return &FormPayload{
		ContentType: w.FormDataContentType(),
		Data:        buf.Bytes(),
	}, nil
}

func filePaths(name string, value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil

	case []string:
		return v, nil

	case []any:
		paths := make([]string, 0, len(v))

		for _, item := range v {
			path, ok := item.(string)

			if !ok {
				return nil, fmt.Errorf("unsupported value type %T for file parameter %q", item, name)
			}

			paths = append(paths, path)
		}

		return paths, nil
	}

	return nil, fmt.Errorf("unsupported value type %T for file parameter %q", value, name)
}

func appendFile(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)

	if err != nil {
		return err
	}

	defer f.Close()

	part, err := w.CreateFormFile(field, filepath.Base(path))

	if err != nil {
		return err
	}

	_, err = io.Copy(part, f)
	return err
}

func fieldValue(value any) string {
	switch v := value.(type) {
	case string:
		return v

	case nil:
		return ""
	}

	data, _ := json.Marshal(value)
	return string(data)
}
