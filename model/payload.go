package model

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/tidwall/gjson"
)

// Payload retains the JSON object a model was decoded from.
//
// Typed fields cover the schema the client knows about; Payload keeps everything
// the server sent so newer or partial schemas lose nothing. Models embed it, so
// cpu.Get("load") and cpu.Load read the same value.
//
// Numbers are kept as json.Number so large integers survive unchanged.
//
// Values nested inside another model carry an empty Payload; look them up
// through the enclosing model instead (for example sensors.Lookup("cores.0.load")).
type Payload struct {
	raw    json.RawMessage
	fields map[string]any
}

func (p *Payload) payload() *Payload { return p }

func (p *Payload) attach(raw json.RawMessage, fields map[string]any) {
	p.raw = raw
	p.fields = fields
}

// Get returns the decoded value stored under key, or nil when absent.
func (p Payload) Get(key string) any {
	return p.fields[key]
}

// Has reports whether the server sent key, even with a null value.
func (p Payload) Has(key string) bool {
	_, ok := p.fields[key]
	return ok
}

// Keys returns the top-level keys in sorted order.
func (p Payload) Keys() []string {
	var keys []string
	for k := range p.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Map returns a shallow copy of the decoded object.
func (p Payload) Map() map[string]any {
	return maps.Clone(p.fields)
}

// Lookup resolves a gjson path ("cores.0.temperature", "controllers.#.id") against the payload.
func (p Payload) Lookup(path string) gjson.Result {
	return gjson.GetBytes(p.raw, path)
}

// JSON returns the payload exactly as the server sent it.
func (p Payload) JSON() json.RawMessage {
	if len(p.raw) == 0 {
		return json.RawMessage("null")
	}
	return slices.Clone(p.raw)
}

// Document is a model with no fixed schema, for endpoints whose shape is server defined.
type Document struct {
	Payload `json:"-"`
}
