package dispatch

import (
	"github.com/gtonic/apibridge/pkg/catalog"
)

// Request holds the classified parameters of one call. Exactly one of
// Body and Form is set when the operation carries a payload.
type Request struct {
	URLParams map[string]any

	Body map[string]any
	Form *FormPayload
}

// Classify partitions a flat argument bag into URL parameters and a
// request payload, following the operation's declared parameters.
//
// Operations with file-upload fields always produce a multipart form,
// regardless of any declared JSON body. Without file fields the payload
// is a plain map, and arguments declared as path or query parameters are
// moved out of it. When the operation declares no request body at all,
// every leftover payload field is reinterpreted as a URL parameter, even
// if it was never declared on the operation.
//
// The argument bag is never mutated; classifying the same input twice
// yields the same result.
func Classify(op catalog.Operation, args map[string]any) (*Request, error) {
	r := &Request{
		URLParams: map[string]any{},
	}

	if len(op.FileParams) > 0 {
		form, err := buildForm(op, args)

		if err != nil {
			return nil, err
		}

		r.Form = form
	} else {
		r.Body = make(map[string]any, len(args))

		for name, value := range args {
			r.Body[name] = value
		}
	}

	for _, p := range op.Parameters {
		if p.In != catalog.InPath && p.In != catalog.InQuery {
			continue
		}

		value, ok := args[p.Name]

		if !ok {
			continue
		}

		r.URLParams[p.Name] = value

		// form fields are already framed as outgoing content and stay put
		if r.Form == nil {
			delete(r.Body, p.Name)
		}
	}

	if !op.HasBody && r.Form == nil {
		for name, value := range r.Body {
			r.URLParams[name] = value
			delete(r.Body, name)
		}
	}

	return r, nil
}
