package yaml

import (
	"strconv"

	"github.com/shapestone/shape-core/pkg/ast"
)

// NodeToInterface converts an AST node to native Go types.
//
// Converts:
//   - *ast.LiteralNode → its value (string, int64, float64, bool, nil)
//   - *ast.ObjectNode (sequence) → []any
//   - *ast.ObjectNode (mapping) → map[string]any
//
// An ObjectNode is a sequence when its keys are exactly "0" to "n-1". An
// empty sequence is therefore indistinguishable from an empty mapping and
// converts to an empty map.
//
// Example:
//
//	node, _ := yaml.Parse("name: Alice\ntags:\n  - go\n  - yaml")
//	data := yaml.NodeToInterface(node)
//	// data is map[string]any{"name": "Alice", "tags": []any{"go", "yaml"}}
func NodeToInterface(node ast.SchemaNode) any {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return n.Value()

	case *ast.ObjectNode:
		props := n.Properties()
		if isSequence(props) {
			arr := make([]any, len(props))
			for i := range arr {
				arr[i] = NodeToInterface(props[strconv.Itoa(i)])
			}
			return arr
		}

		m := make(map[string]any, len(props))
		for key, propNode := range props {
			m[key] = NodeToInterface(propNode)
		}
		return m

	default:
		return nil
	}
}

// isSequence reports whether props are keyed "0" to "n-1".
func isSequence(props map[string]ast.SchemaNode) bool {
	if len(props) == 0 {
		return false
	}
	for i := 0; i < len(props); i++ {
		if _, ok := props[strconv.Itoa(i)]; !ok {
			return false
		}
	}
	return true
}

// ReleaseTree releases all nodes of an AST back to their pools. Call it
// when you are completely done with an AST to enable node reuse. Nodes
// shared through aliases are released once.
//
// Example:
//
//	node, _ := yaml.Parse("name: Alice")
//	data := yaml.NodeToInterface(node)
//	yaml.ReleaseTree(node)
func ReleaseTree(node ast.SchemaNode) {
	releaseTree(node, make(map[ast.SchemaNode]bool))
}

func releaseTree(node ast.SchemaNode, seen map[ast.SchemaNode]bool) {
	if node == nil || seen[node] {
		return
	}
	seen[node] = true

	switch n := node.(type) {
	case *ast.LiteralNode:
		ast.ReleaseLiteralNode(n)

	case *ast.ObjectNode:
		// Children first, while the properties are still valid.
		for _, child := range n.Properties() {
			releaseTree(child, seen)
		}
		ast.ReleaseObjectNode(n)
	}
}
