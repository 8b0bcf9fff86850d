package document

import (
	"github.com/antchfx/xpath"
)

// NodeNavigator implements xpath.NodeNavigator for a document tree, enabling
// XPath queries with github.com/antchfx/xpath.
//
// For a description of the various methods of interface xpath.NodeNavigator
// please refer to the documentation of antchfx/xpath. It is not replicated here.
type NodeNavigator struct {
	root, current *node
	attr          int // attributes index
}

func newNavigator(n *node) *NodeNavigator {
	return &NodeNavigator{
		current: n,
		root:    n,
		attr:    -1,
	}
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	switch nav.current.typ {
	case commentNode:
		return xpath.CommentNode
	case textNode:
		return xpath.TextNode
	case elementNode:
		if nav.attr != -1 {
			return xpath.AttributeNode
		}
		return xpath.ElementNode
	}
	return xpath.RootNode
}

func (nav *NodeNavigator) LocalName() string {
	if nav.attr != -1 {
		return nav.current.attrs[nav.attr].Name.Local
	}
	return nav.current.name
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	switch nav.current.typ {
	case commentNode, textNode:
		return nav.current.data
	case elementNode:
		if nav.attr != -1 {
			return nav.current.attrs[nav.attr].Value
		}
	}
	return nav.current.innerText()
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.current = nav.root
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	if nav.current == nav.root || nav.current.parent == nil {
		return false
	}
	nav.current = nav.current.parent
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.attr >= len(nav.current.attrs)-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 || len(nav.current.children) == 0 {
		return false
	}
	nav.current = nav.current.children[0]
	return true
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 || nav.current == nav.root || nav.current.parent == nil {
		return false
	}
	if nav.current.index() == 0 {
		return false
	}
	nav.current = nav.current.parent.children[0]
	return true
}

func (nav *NodeNavigator) MoveToNext() bool {
	if nav.attr != -1 || nav.current == nav.root || nav.current.parent == nil {
		return false
	}
	siblings := nav.current.parent.children
	i := nav.current.index() + 1
	if i <= 0 || i >= len(siblings) { // was last child of parent
		return false
	}
	nav.current = siblings[i]
	return true
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	if nav.attr != -1 || nav.current == nav.root || nav.current.parent == nil {
		return false
	}
	i := nav.current.index() - 1
	if i < 0 {
		return false
	}
	nav.current = nav.current.parent.children[i]
	return true
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.current = n.current
	nav.attr = n.attr
	return true
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

var _ xpath.NodeNavigator = &NodeNavigator{}

// selectNodes returns all element nodes below n matching a compiled
// XPath expression, in document order.
func selectNodes(n *node, expr *xpath.Expr) []*node {
	var nodes []*node
	iter := expr.Select(newNavigator(n))
	for iter.MoveNext() {
		nav, ok := iter.Current().(*NodeNavigator)
		if !ok || nav.attr != -1 {
			continue
		}
		nodes = append(nodes, nav.current)
	}
	return nodes
}
