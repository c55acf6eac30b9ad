package dispatch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gtonic/apibridge/pkg/tool"
)

var (
	_ tool.Provider = (*Dispatcher)(nil)
)

// Tools exposes every catalog operation as a callable tool.
func (d *Dispatcher) Tools(ctx context.Context) ([]tool.Tool, error) {
	var tools []tool.Tool

	for _, o := range d.catalog.Operations() {
		tool := tool.Tool{
			Name:        o.ID,
			Description: o.Description,

			Schema: o.Schema,

			Execute: func(ctx context.Context, args map[string]any) (any, error) {
				resp, err := d.Call(ctx, o.ID, args)

				if err != nil {
					return nil, err
				}

				if len(resp.Data) == 0 {
					return fmt.Sprintf("%d %s", resp.Status, http.StatusText(resp.Status)), nil
				}

				return string(resp.Data), nil
			},
		}

		tools = append(tools, tool)
	}

	return tools, nil
}
