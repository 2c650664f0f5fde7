package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiply/cn-diagrams/internal/registry"
	"github.com/chiply/cn-diagrams/internal/result"
)

const shop = `name: Shop
nodes:
  - id: web
    label: Web
  - id: api
    label: API
edges:
  - source: web
    target: api
`

func writeDiagram(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(io.Discard)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "", "parse", writeDiagram(t, shop))
	require.NoError(t, err)
	assert.Contains(t, out, "Shop")
	assert.Contains(t, out, "2 nodes, 1 edges")
	assert.Contains(t, out, "no problems")
	assert.Contains(t, out, "- web")
}

func TestParseCommandReportsErrors(t *testing.T) {
	out, err := run(t, "nodes:\n  - id: a\n", "parse", "-")
	assert.ErrorIs(t, err, ErrDiagramInvalid)
	assert.Contains(t, out, `Node "a": Missing label`)
}

func TestParseCommandJSON(t *testing.T) {
	out, err := run(t, shop, "parse", "--json", "-")
	require.NoError(t, err)

	var res result.ParseResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "Shop", res.Name)
	assert.Len(t, res.Elements, 3)
}

func TestElementsCommand(t *testing.T) {
	out, err := run(t, shop, "elements", "-")
	require.NoError(t, err)

	var els []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &els))
	require.Len(t, els, 3)
	assert.Equal(t, "edges", els[2]["group"])
}

func TestRenderCommandDOT(t *testing.T) {
	out, err := run(t, shop, "render", "-f", "dot", "--rankdir", "LR", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph G {"))
	assert.Contains(t, out, "rankdir=LR;")
	assert.Contains(t, out, `"web" -> "api";`)
}

func TestRenderCommandToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.dot")
	out, err := run(t, shop, "render", "-f", "dot", "-o", path, "-")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph G {")
}

func TestRenderCommandBadFormat(t *testing.T) {
	_, err := run(t, shop, "render", "-f", "pdf", "-")
	assert.Error(t, err)
}

func TestExportHCLCommand(t *testing.T) {
	out, err := run(t, shop, "export-hcl", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `node "web" {`)
	assert.Contains(t, out, `edge "web-api" {`)
}

func TestImportDSLCommand(t *testing.T) {
	out, err := run(t, "node a \"A\"\nnode b \"B\"\nedge a -> b\n", "import-dsl", "-")
	require.NoError(t, err)
	assert.Equal(t, "nodes:\n  - id: a\n    label: A\n  - id: b\n    label: B\nedges:\n  - source: a\n    target: b\n", out)
}

func TestEditCommand(t *testing.T) {
	out, err := run(t, shop, "edit", "rename_label", "-", "--params", `{"node_id":"api","label":"Gateway"}`)
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(shop, "label: API", "label: Gateway", 1), out)
}

func TestEditCommandInPlace(t *testing.T) {
	path := writeDiagram(t, shop)
	out, err := run(t, "", "edit", "delete_edge", path, "-i", "-p", `{"edge_id":"web-api"}`)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "edges: []")
}

func TestEditCommandErrors(t *testing.T) {
	_, err := run(t, shop, "edit", "explode", "-")
	assert.ErrorIs(t, err, registry.ErrUnknownOperation)

	_, err = run(t, shop, "edit", "delete_node", "-", "-i")
	assert.Error(t, err)
}

func TestOpsCommand(t *testing.T) {
	out, err := run(t, "", "ops")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(registry.Default.Names(), "\n")+"\n", out)
}

func TestIDCommand(t *testing.T) {
	out, err := run(t, shop, "id", "-", "Web")
	require.NoError(t, err)
	assert.Equal(t, "web_1\n", out)
}

func TestIDCommandList(t *testing.T) {
	out, err := run(t, shop, "id", "--list", "-")
	require.NoError(t, err)
	assert.Equal(t, "api\nweb\n", out)
}

func TestIDCommandNeedsLabel(t *testing.T) {
	_, err := run(t, shop, "id", "-")
	assert.Error(t, err)
}

func TestMissingFile(t *testing.T) {
	_, err := run(t, "", "parse", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
