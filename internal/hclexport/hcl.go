package hclexport

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// NodeRoot is the root name of node references (node.<id>).
const NodeRoot = "node"

// SetAttributeStr sets a string attribute, skipping empty values.
func SetAttributeStr(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

// SetNodeRef sets an attribute referring to the node id. Ids that are valid
// HCL identifiers become node.<id> traversals; anything else is written as a
// string.
func SetNodeRef(body *hclwrite.Body, name, id string) {
	if id == "" {
		return
	}
	if !hclsyntax.ValidIdentifier(id) {
		body.SetAttributeValue(name, cty.StringVal(id))
		return
	}
	body.SetAttributeTraversal(name, nodeTraversal(id))
}

// nodeTraversal builds hcl.Traversal for node.<id>.
func nodeTraversal(id string) hcl.Traversal {
	return hcl.Traversal{
		hcl.TraverseRoot{Name: NodeRoot},
		hcl.TraverseAttr{Name: id},
	}
}

// BlockToBytes formats a block and returns its bytes (with newline).
func BlockToBytes(block *hclwrite.Block) []byte {
	f := hclwrite.NewEmptyFile()
	f.Body().AppendBlock(block)
	return f.Bytes()
}
