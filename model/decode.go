package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

// Holder is satisfied by a pointer to any model that embeds Payload.
type Holder[T any] interface {
	*T
	payload() *Payload
}

// Decode wraps a JSON object in a *T. JSON null yields (nil, nil).
func Decode[T any, P Holder[T]](raw json.RawMessage) (*T, error) {
	if isNull(raw) {
		return nil, nil
	}

	fields, err := parseObject(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %T: %w", *new(T), err)
	}

	v := new(T)
	if err := decodeFields(fields, v); err != nil {
		return nil, fmt.Errorf("decode %T: %w", *v, err)
	}
	P(v).payload().attach(raw, fields)

	return v, nil
}

// DecodeList wraps every element of a JSON array, keeping server order.
// A null element is a decode error.
func DecodeList[T any, P Holder[T]](raw json.RawMessage) ([]*T, error) {
	if isNull(raw) {
		return []*T{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode []%T: %w", *new(T), err)
	}

	out := make([]*T, 0, len(items))
	for i, item := range items {
		if isNull(item) {
			return nil, fmt.Errorf("element %d: decode %T: null", i, *new(T))
		}
		v, err := Decode[T, P](item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
	}

	return out, nil
}

// Success reports whether raw is an object whose "success" key is JSON true.
func Success(raw json.RawMessage) bool {
	return gjson.GetBytes(raw, "success").Type == gjson.True
}

// parseObject reads a single JSON object, keeping numbers as json.Number.
func parseObject(raw json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}
	return fields, nil
}

// decodeFields copies known keys into the typed fields of out. The schema is
// advisory: missing keys stay zero, scalars are coerced where possible, and a
// value that cannot be converted leaves its field zero. The payload keeps it.
func decodeFields(fields map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       numberHook,
		Result:           out,
	})
	if err != nil {
		return err
	}

	var fieldErrs *mapstructure.Error
	if err := dec.Decode(fields); err != nil && !errors.As(err, &fieldErrs) {
		return err
	}
	return nil
}

// numberHook converts json.Number for numeric targets without going through
// float64, so integers above 2^53 stay exact.
func numberHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}

	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil || math.IsInf(f, 0) {
			return nil, fmt.Errorf("number %s out of range", n)
		}
		return int64(f), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
			return u, nil
		}
		f, err := n.Float64()
		if err != nil || f < 0 || math.IsInf(f, 0) {
			return nil, fmt.Errorf("number %s out of range", n)
		}
		return uint64(f), nil
	case reflect.Float32, reflect.Float64:
		return n.Float64()
	case reflect.String:
		return n.String(), nil
	}
	return data, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
