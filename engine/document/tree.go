package document

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/npillmayer/belle/core"
	"golang.org/x/text/encoding/ianaindex"
)

type nodeType int

const (
	documentNode nodeType = iota
	elementNode
	textNode
	commentNode
)

// node is a node of a parsed XML tree.
type node struct {
	typ      nodeType
	name     string
	attrs    []xml.Attr
	data     string
	parent   *node
	children []*node
}

// parseTree reads an XML document into a tree of nodes. Documents in
// encodings other than UTF-8 (e.g., Shift_JIS) are decoded as declared.
func parseTree(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	root := &node{typ: documentNode}
	cur := root
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "malformed document: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{typ: elementNode, name: t.Name.Local, attrs: t.Copy().Attr, parent: cur}
			cur.children = append(cur.children, n)
			cur = n
		case xml.EndElement:
			cur = cur.parent
		case xml.CharData:
			cur.children = append(cur.children, &node{typ: textNode, data: string(t), parent: cur})
		case xml.Comment:
			cur.children = append(cur.children, &node{typ: commentNode, data: string(t), parent: cur})
		}
	}
	return root, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, core.Error(core.EINVALID, "unsupported document encoding %s", label)
	}
	tracer().Debugf("decoding document from %s", label)
	return enc.NewDecoder().Reader(input), nil
}

// attr returns the value of an attribute of an element node.
func (n *node) attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// innerText returns the text between the start and end tags of a node.
func (n *node) innerText() string {
	var b strings.Builder
	var output func(*node)
	output = func(n *node) {
		switch n.typ {
		case textNode:
			b.WriteString(n.data)
			return
		case commentNode:
			return
		}
		for _, ch := range n.children {
			output(ch)
		}
	}
	output(n)
	return b.String()
}

// index returns the position of n among its siblings.
func (n *node) index() int {
	if n.parent == nil {
		return 0
	}
	for i, ch := range n.parent.children {
		if ch == n {
			return i
		}
	}
	return -1
}
