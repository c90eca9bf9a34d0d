package javasrc

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for each node.
// Returning false from the visitor skips the node's children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		walkTree(node.Child(i), visitor)
	}
}

// findChildByType finds the first child node with the given type.
func findChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(root *sitter.Node) *sitter.Node {
	var found *sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return false
		}
		return n.HasError()
	})
	return found
}
