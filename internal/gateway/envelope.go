package gateway

import (
	"mindmate/internal/models"
)

const maxEnvelopeDepth = 8

var envelopeKeys = []string{"reports", "report"}

// unwrapEnvelope strips the wrappers a provider adds around an operation
// result and always hands back an object.
func unwrapEnvelope(body []byte) (*models.RawPayload, error) {
	v, err := models.DecodeValue(body)
	if err != nil {
		return nil, err
	}
	return unwrapValue(v), nil
}

func unwrapValue(v any) *models.RawPayload {
	for range maxEnvelopeDepth {
		switch t := v.(type) {
		case *models.RawPayload:
			inner, ok := reportsOf(t)
			if !ok {
				return t
			}
			v = inner
		case []any:
			if len(t) == 1 {
				if obj, ok := t[0].(*models.RawPayload); ok {
					v = obj
					continue
				}
			}
			return wrapResult(t)
		default:
			return wrapResult(t)
		}
	}
	if obj, ok := v.(*models.RawPayload); ok {
		return obj
	}
	return wrapResult(v)
}

// reportsOf returns the first report of an envelope object. An empty
// reports list unwraps to an empty object.
func reportsOf(p *models.RawPayload) (any, bool) {
	for _, key := range envelopeKeys {
		raw, ok := p.Get(key)
		if !ok {
			continue
		}
		list, ok := raw.([]any)
		if !ok {
			continue
		}
		if len(list) == 0 {
			return models.NewRawPayload(), true
		}
		return list[0], true
	}
	return nil, false
}

func wrapResult(v any) *models.RawPayload {
	p := models.NewRawPayload()
	p.Set("result", v)
	return p
}
