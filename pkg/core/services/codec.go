package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

// decode turns a stored document into a checked content value. The store id
// is injected as "id" so collection items carry their identity.
func decode[T domain.Content](doc ports.Document) (T, error) {
	var out T

	fields := maps.Clone(doc.Fields)
	if fields == nil {
		fields = ports.Fields{}
	}
	fields["id"] = doc.ID

	raw, err := json.Marshal(fields)
	if err != nil {
		return out, errors.Join(domain.ErrInvalidContent, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, errors.Join(domain.ErrInvalidContent, err)
	}
	if err := out.Validate(); err != nil {
		return out, err
	}
	return out, nil
}

// encode flattens a content value into store fields. The id never travels
// inside the fields; the store owns it.
func encode(v any) (ports.Fields, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	fields := ports.Fields{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	delete(fields, "id")
	return fields, nil
}

// clone deep-copies a draft so edits never alias the loaded lists.
func clone[T any](v T) (T, error) {
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}

// setField replaces one JSON field of v and re-decodes the result strictly,
// so a value of the wrong type or an unknown field name is rejected.
func setField[T any](v T, field string, value json.RawMessage) (T, error) {
	var out T
	if field == "id" {
		return out, fmt.Errorf("%w: id cannot be changed", domain.ErrInvalidContent)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out, err
	}
	if _, ok := fields[field]; !ok {
		return out, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidContent, field)
	}
	if len(bytes.TrimSpace(value)) == 0 {
		value = json.RawMessage("null")
	}
	fields[field] = value

	raw, err = json.Marshal(fields)
	if err != nil {
		return out, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("%w: field %q: %v", domain.ErrInvalidContent, field, err)
	}
	return out, nil
}
