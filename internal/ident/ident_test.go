package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		existing Set
		want     string
	}{
		{"simple", "API", nil, "api"},
		{"spaces", "Web Server", nil, "web_server"},
		{"punctuation runs", "  Auth -- Service (v2)!", nil, "auth_service_v2"},
		{"digits kept", "Node 42", nil, "node_42"},
		{"empty", "", nil, "node"},
		{"symbols only", "***", nil, "node"},
		{"non ascii", "Café", nil, "caf"},
		{"collision", "API", NewSet("api"), "api_1"},
		{"second collision", "API", NewSet("api", "api_1"), "api_2"},
		{"fallback collision", "!!", NewSet("node"), "node_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateID(tt.label, tt.existing))
		})
	}
}

func TestGenerateIDUnique(t *testing.T) {
	existing := NewSet("db")
	for i := 0; i < 20; i++ {
		id := GenerateID("DB", existing)
		require.False(t, existing.Has(id), "allocated %q twice", id)
		existing.Add(id)
	}
	assert.Len(t, existing, 21)
}

func TestAllIDs(t *testing.T) {
	text := `nodes:
  - id: web
    label: Web
  - id: api
    label: API
    children:
      - id: handler
        label: Handler
        children:
          - id: 42
            label: Answer
  - label: No id
edges:
  - id: e1
    source: web
    target: api
`
	assert.Equal(t, []string{"42", "api", "handler", "web"}, AllIDs(text).Sorted())
}

func TestAllIDsInvalid(t *testing.T) {
	assert.Empty(t, AllIDs("nodes: [oops"))
	assert.Empty(t, AllIDs(""))
	assert.Empty(t, AllIDs("nodes: 3\n"))
}

func TestAllocate(t *testing.T) {
	text := "nodes:\n  - id: api\n    label: API\n    children:\n      - id: api_1\n        label: API\n"
	assert.Equal(t, "api_2", Allocate(text, "API"))
	assert.Equal(t, "cache", Allocate(text, "Cache"))
}
