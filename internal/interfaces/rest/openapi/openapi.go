// Package openapi embeds the HTTP contract used for request validation.
package openapi

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// InstanceName is the swag registry key of the document.
const InstanceName = "groupgate"

//go:embed openapi.yaml
var spec []byte

type document struct{}

func (document) ReadDoc() string {
	return string(spec)
}

func init() {
	swag.Register(InstanceName, document{})
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// Document returns the registered document for serving.
func Document() (string, error) {
	return swag.ReadDoc(InstanceName)
}
