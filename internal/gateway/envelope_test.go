package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"flat object", `{"message":"hi"}`, `{"message":"hi"}`},
		{"reports envelope", `{"status":200,"reports":[{"message":"hi"}]}`, `{"message":"hi"}`},
		{"nested reports", `{"reports":[[{"message":"hi"}]]}`, `{"message":"hi"}`},
		{"report envelope", `{"report":[{"a":1},{"a":2}]}`, `{"a":1}`},
		{"reports in reports", `{"reports":[{"reports":[{"deep":true}]}]}`, `{"deep":true}`},
		{"empty reports", `{"reports":[]}`, `{}`},
		{"single element list", `[{"x":1}]`, `{"x":1}`},
		{"scalar wrapped", `"Breathe in"`, `{"result":"Breathe in"}`},
		{"list of scalars wrapped", `["a","b"]`, `{"result":["a","b"]}`},
		{"report scalar wrapped", `{"reports":["done"]}`, `{"result":"done"}`},
		{"reports not a list", `{"reports":"nope"}`, `{"reports":"nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := unwrapEnvelope([]byte(tt.body))
			require.NoError(t, err)
			data, err := raw.MarshalJSON()
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestUnwrapEnvelope_KeepsKeyOrder(t *testing.T) {
	raw, err := unwrapEnvelope([]byte(`{"reports":[{"zeta":1,"alpha":2}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha"}, raw.Keys())
}

func TestUnwrapEnvelope_Invalid(t *testing.T) {
	_, err := unwrapEnvelope([]byte(`<html>`))
	assert.Error(t, err)
}
