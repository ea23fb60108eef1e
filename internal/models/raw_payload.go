package models

import (
	"bytes"
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"io"
)

// RawPayload is a decoded JSON object that remembers the order its keys
// arrived in. Values are nil, bool, string, float64, []any or *RawPayload.
type RawPayload struct {
	keys   []string
	fields map[string]any
}

func NewRawPayload() *RawPayload {
	return &RawPayload{fields: make(map[string]any)}
}

// Set stores value under key. A repeated key keeps its first position.
func (p *RawPayload) Set(key string, value any) {
	if p.fields == nil {
		p.fields = make(map[string]any)
	}
	if _, ok := p.fields[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.fields[key] = value
}

func (p *RawPayload) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.fields[key]
	return v, ok
}

// Object returns the nested object under key, if that is what it holds.
func (p *RawPayload) Object(key string) (*RawPayload, bool) {
	v, ok := p.Get(key)
	if !ok {
		return nil, false
	}
	obj, ok := v.(*RawPayload)
	return obj, ok && obj != nil
}

func (p *RawPayload) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

func (p *RawPayload) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

func (p *RawPayload) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.fields[key])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *RawPayload) UnmarshalJSON(data []byte) error {
	v, err := DecodeValue(data)
	if err != nil {
		return err
	}
	obj, ok := v.(*RawPayload)
	if !ok {
		return fmt.Errorf("expected JSON object, got %T", v)
	}
	*p = *obj
	return nil
}

// DecodeValue decodes any JSON document keeping object key order.
func DecodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty JSON document")
		}
		return nil, err
	}
	v, err := decodeToken(dec, tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level JSON value")
	}
	return v, nil
}

func decodeToken(dec *json.Decoder, tok json.Token) (any, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := NewRawPayload()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", kt)
				}
				vt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				val, err := decodeToken(dec, vt)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			list := make([]any, 0)
			for dec.More() {
				vt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				val, err := decodeToken(dec, vt)
				if err != nil {
					return nil, err
				}
				list = append(list, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
	case json.Number:
		return v.Float64()
	default:
		return v, nil
	}
}
