package http

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

type document struct {
	json string
}

func (d document) ReadDoc() string {
	return d.json
}

// RegisterDocs publishes the document under swag's default instance name,
// which is where echo-swagger looks it up. Registering twice is a no-op.
func RegisterDocs(doc *openapi3.T) error {
	if swag.GetSwagger(swag.Name) != nil {
		return nil
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}
	swag.Register(swag.Name, document{json: string(raw)})
	return nil
}
