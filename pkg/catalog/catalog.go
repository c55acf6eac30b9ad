package catalog

import (
	"slices"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

type Catalog struct {
	doc *openapi3.T

	order      []string
	operations map[string]Operation
}

func New(path string) (*Catalog, error) {
	doc, err := Load(path)

	if err != nil {
		return nil, err
	}

	return FromDocument(doc)
}

func FromDocument(doc *openapi3.T) (*Catalog, error) {
	operations, err := getOperations(doc)

	if err != nil {
		return nil, err
	}

	order := make([]string, 0, len(operations))

	for id := range operations {
		order = append(order, id)
	}

	sort.Strings(order)

	return &Catalog{
		doc: doc,

		order:      order,
		operations: operations,
	}, nil
}

// Operation resolves one operation by its operationId.
func (c *Catalog) Operation(id string) (Operation, bool) {
	o, ok := c.operations[id]
	return o, ok
}

// Operations returns all operations in stable (sorted by id) order.
func (c *Catalog) Operations() []Operation {
	result := make([]Operation, 0, len(c.order))

	for _, id := range c.order {
		result = append(result, c.operations[id])
	}

	return result
}

func getOperations(doc *openapi3.T) (map[string]Operation, error) {
	result := map[string]Operation{}

	for p, path := range doc.Paths.Map() {
		operations := path.Operations()

		for m, o := range operations {
			if o.OperationID == "" {
				continue
			}

			description := o.Summary
			description = strings.TrimRight(description, ". \n")
			description += "."

			if o.Description != "" {
				description += " " + o.Description
				description = strings.TrimRight(description, ". \n")
				description += "."
			}

			var parameters []Parameter

			required := []string{}
			properties := map[string]any{}

			for _, p := range o.Parameters {
				if p.Value == nil {
					continue
				}

				parameter := Parameter{
					Name:        p.Value.Name,
					In:          strings.ToLower(p.Value.In),
					Required:    p.Value.Required,
					Description: p.Value.Description,
				}

				parameters = append(parameters, parameter)

				if parameter.In == InHeader || parameter.In == InCookie {
					continue
				}

				properties[parameter.Name] = schemaProperty(p.Value.Schema, parameter.Description)

				if parameter.Required {
					required = append(required, parameter.Name)
				}
			}

			var fileParams []string

			if o.RequestBody != nil && o.RequestBody.Value != nil {
				if content := o.RequestBody.Value.Content.Get("application/json"); content != nil {
					if schema := content.Schema; schema != nil && schema.Value != nil {
						for name, prop := range schema.Value.Properties {
							properties[name] = schemaProperty(prop, "")
						}

						for _, name := range schema.Value.Required {
							if !slices.Contains(required, name) {
								required = append(required, name)
							}
						}
					}
				}

				if content := o.RequestBody.Value.Content.Get("multipart/form-data"); content != nil {
					if schema := content.Schema; schema != nil && schema.Value != nil {
						for name, prop := range schema.Value.Properties {
							if prop.Value == nil {
								continue
							}

							if isBinary(prop.Value) {
								fileParams = append(fileParams, name)
								properties[name] = map[string]any{
									"type":        "string",
									"description": "local file path",
								}

								continue
							}

							properties[name] = schemaProperty(prop, "")
						}

						for _, name := range schema.Value.Required {
							if !slices.Contains(required, name) {
								required = append(required, name)
							}
						}
					}
				}
			}

			sort.Strings(fileParams)
			sort.Strings(required)

			schema := map[string]any{
				"type": "object",

				"properties": properties,
			}

			if len(required) > 0 {
				schema["required"] = required
			}

			result[o.OperationID] = Operation{
				ID:          o.OperationID,
				Method:      m,
				Path:        p,
				Summary:     o.Summary,
				Description: description,

				Parameters: parameters,

				HasBody:    o.RequestBody != nil,
				FileParams: fileParams,

				Schema: schema,
			}
		}
	}

	return result, nil
}

func schemaProperty(ref *openapi3.SchemaRef, description string) map[string]any {
	property := map[string]any{
		"type": "string",
	}

	if ref != nil && ref.Value != nil {
		if types := ref.Value.Type; types != nil {
			if slice := types.Slice(); len(slice) == 1 {
				property["type"] = slice[0]
			} else if len(slice) > 1 {
				property["type"] = slice
			}
		}

		if description == "" {
			description = ref.Value.Description
		}
	}

	if description != "" {
		property["description"] = description
	}

	return property
}

func isBinary(s *openapi3.Schema) bool {
	if s.Format == "binary" {
		return true
	}

	if s.Items != nil && s.Items.Value != nil && s.Items.Value.Format == "binary" {
		return true
	}

	return false
}
