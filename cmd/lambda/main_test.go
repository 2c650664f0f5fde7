package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiply/cn-diagrams/internal/config"
	"github.com/chiply/cn-diagrams/internal/logger"
)

const shop = "nodes:\n  - id: a\n    label: A\n  - id: b\n    label: B\nedges:\n  - source: a\n    target: b\n"

func newApp() *app {
	return &app{cfg: config.Default(), log: logger.NewJSON(io.Discard, charmlog.InfoLevel)}
}

func invoke(t *testing.T, event LambdaEvent) (int, LambdaResponse) {
	t.Helper()
	resp, err := newApp().handler(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	var out LambdaResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	return resp.StatusCode, out
}

func body(t *testing.T, req Request) string {
	t.Helper()
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return string(b)
}

func TestHandlerParse(t *testing.T) {
	status, out := invoke(t, LambdaEvent{Body: body(t, Request{Action: ActionParse, Text: shop})})
	assert.Equal(t, 200, status)
	require.NotNil(t, out.Parse)
	assert.True(t, out.Parse.Success)
	assert.Len(t, out.Parse.Elements, 3)
}

func TestHandlerEdit(t *testing.T) {
	req := Request{Action: ActionEdit, Text: shop, Op: "delete_node", Params: json.RawMessage(`{"node_id":"b"}`)}
	status, out := invoke(t, LambdaEvent{Body: base64.StdEncoding.EncodeToString([]byte(body(t, req))), IsBase64: true})
	assert.Equal(t, 200, status)
	require.NotNil(t, out.Edit)
	assert.True(t, out.Edit.Changed)
	assert.Equal(t, "nodes:\n  - id: a\n    label: A\nedges: []\n", out.Edit.Text)
	require.NotNil(t, out.Parse)
	assert.Len(t, out.Parse.Elements, 1)
}

func TestHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		event  LambdaEvent
		status int
		typ    string
	}{
		{"bad base64", LambdaEvent{Body: "%%%", IsBase64: true}, 400, "invalid_input"},
		{"bad json", LambdaEvent{Body: "{"}, 400, "invalid_json"},
		{"unknown action", LambdaEvent{Body: `{"action":"render"}`}, 400, "invalid_input"},
		{"unknown op", LambdaEvent{Body: `{"action":"edit","op":"explode"}`}, 422, "unknown_operation"},
		{"missing param", LambdaEvent{Body: `{"action":"edit","op":"delete_node"}`}, 400, "invalid_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := invoke(t, tt.event)
			assert.Equal(t, tt.status, status)
			require.Len(t, out.Errors, 1)
			assert.Equal(t, tt.typ, out.Errors[0].Type)
		})
	}
}
