// Package cms is the document-store client used by the operator CLI and
// the HTTP modules. Records travel as Documents keyed by the models'
// JSON field names.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
)

// Client is the handle every consumer receives from the entry point.
//
// Update merges at the top level only: a nested object present in data
// replaces the stored one wholesale. Callers changing one sub-field of
// an object such as a service's cta must re-merge the existing object
// themselves.
type Client interface {
	Find(ctx context.Context, collection string, q Query) (*Result, error)
	FindByID(ctx context.Context, collection, id string) (Document, error)
	Count(ctx context.Context, collection string, q Query) (int64, error)
	Iter(ctx context.Context, collection string, q Query) iter.Seq2[Document, error]
	Create(ctx context.Context, collection string, data Document) (Document, error)
	Update(ctx context.Context, collection, id string, data Document) (Document, error)
	Delete(ctx context.Context, collection, id string) error
	FindGlobal(ctx context.Context, slug string) (Document, error)
	UpdateGlobal(ctx context.Context, slug string, data Document) (Document, error)
}

type Document map[string]any

type Result struct {
	Docs      []Document
	TotalDocs int64
}

// Condition is an equality test on one document field.
type Condition struct {
	Field  string
	Equals any
}

func Eq(field string, value any) Condition {
	return Condition{Field: field, Equals: value}
}

// Query selects records. Where conditions are AND-ed; Any conditions
// are OR-ed together and AND-ed with Where. Sort names a field, prefixed
// with "-" for descending order. A zero Limit means no limit.
type Query struct {
	Where []Condition
	Any   []Condition
	Sort  string
	Limit int
}

// ToDocument converts a model (or any JSON-encodable value) to a
// Document. Numbers are kept as json.Number.
func ToDocument(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// MustDocument is ToDocument for values known to encode, such as models.
func MustDocument(v any) Document {
	doc, err := ToDocument(v)
	if err != nil {
		panic(fmt.Sprintf("cms: encoding %T: %v", v, err))
	}
	return doc
}

// Decode fills v from the document.
func Decode(doc Document, v any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func (d Document) ID() string {
	return d.String("id")
}

func (d Document) String(key string) string {
	switch v := d[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (d Document) Int(key string) int {
	switch v := d[key].(type) {
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func (d Document) Bool(key string) bool {
	b, _ := d[key].(bool)
	return b
}

// Doc returns the nested object under key, or nil.
func (d Document) Doc(key string) Document {
	switch v := d[key].(type) {
	case Document:
		return v
	case map[string]any:
		return Document(v)
	}
	return nil
}
