package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want StringList
	}{
		{"array", `["fever", " cough "]`, StringList{"fever", "cough"}},
		{"comma separated", `"fever, cough,,headache "`, StringList{"fever", "cough", "headache"}},
		{"blank string", `"  "`, StringList{}},
		{"null", `null`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var bad StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}
