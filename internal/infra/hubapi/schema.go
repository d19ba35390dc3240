// Where: internal/infra/hubapi/schema.go
// What: JSON schema checks for API response bodies.
// Why: Reject malformed 200 responses with a clear error instead of a
// zero-valued field.
package hubapi

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sciurus/dockhub/internal/domain/registry"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const (
	schemaLogin   = "login"
	schemaGroup   = "group"
	schemaMembers = "members"
	schemaGrants  = "grants"
	schemaObject  = "object"
)

var schemaNames = []string{schemaLogin, schemaGroup, schemaMembers, schemaGrants, schemaObject}

var (
	schemaOnce      sync.Once
	schemaErr       error
	compiledSchemas map[string]*jsonschema.Schema
)

// ErrInvalidPayload marks a body that is not JSON or does not match the
// expected shape.
var ErrInvalidPayload = errors.New("unexpected response payload")

func loadSchemas() (map[string]*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		for _, name := range schemaNames {
			payload, err := schemaFS.ReadFile("schemas/" + name + ".schema.json")
			if err != nil {
				schemaErr = fmt.Errorf("read schema %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(schemaURL(name), bytes.NewReader(payload)); err != nil {
				schemaErr = fmt.Errorf("add schema %s: %w", name, err)
				return
			}
		}
		compiled := make(map[string]*jsonschema.Schema, len(schemaNames))
		for _, name := range schemaNames {
			sch, err := compiler.Compile(schemaURL(name))
			if err != nil {
				schemaErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			compiled[name] = sch
		}
		compiledSchemas = compiled
	})
	return compiledSchemas, schemaErr
}

func schemaURL(name string) string {
	return "mem://dockhub/" + name + ".schema.json"
}

// decodeDocument parses body preserving number literals.
func decodeDocument(body []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var document any
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrInvalidPayload)
	}
	return document, nil
}

// validate decodes body and checks it against the named schema.
func validate(name string, body []byte) (any, error) {
	schemas, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	document, err := decodeDocument(body)
	if err != nil {
		return nil, err
	}
	if err := schemas[name].Validate(document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return document, nil
}

// ParseToken extracts the login token.
func ParseToken(body []byte) (registry.Token, error) {
	if _, err := validate(schemaLogin, body); err != nil {
		return "", err
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return registry.Token(payload.Token), nil
}

// ParseGroupID extracts the id of a group lookup.
func ParseGroupID(body []byte) (registry.GroupID, error) {
	if _, err := validate(schemaGroup, body); err != nil {
		return registry.GroupID{}, err
	}
	var payload struct {
		ID registry.GroupID `json:"id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return registry.GroupID{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return payload.ID, nil
}

// ParseMembers accepts a bare member array or a paginated object with a
// results array.
func ParseMembers(body []byte) ([]registry.Member, error) {
	document, err := validate(schemaMembers, body)
	if err != nil {
		return nil, err
	}
	if _, paged := document.(map[string]any); paged {
		var payload struct {
			Results []registry.Member `json:"results"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return payload.Results, nil
	}
	var members []registry.Member
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return members, nil
}

// ParseGrants extracts the grant list returned by the grant call.
func ParseGrants(body []byte) ([]registry.RepoGroupGrant, error) {
	if _, err := validate(schemaGrants, body); err != nil {
		return nil, err
	}
	var grants []registry.RepoGroupGrant
	if err := json.Unmarshal(body, &grants); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return grants, nil
}

// ParseObject decodes a JSON object, keeping number literals intact.
func ParseObject(body []byte) (map[string]any, error) {
	document, err := validate(schemaObject, body)
	if err != nil {
		return nil, err
	}
	object, ok := document.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidPayload)
	}
	return object, nil
}

// ParseDocument decodes any JSON value, keeping number literals intact.
func ParseDocument(body []byte) (any, error) {
	return decodeDocument(body)
}
