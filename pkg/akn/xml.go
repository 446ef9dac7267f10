package akn

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// attrName builds an unqualified attribute name.
func attrName(local string) xml.Name {
	return xml.Name{Local: local}
}

// element creates an unattached element node.
func element(name string) *xmlquery.Node {
	return &xmlquery.Node{Type: xmlquery.ElementNode, Data: name}
}

// appendElement creates an element and attaches it to parent.
func appendElement(parent *xmlquery.Node, name string) *xmlquery.Node {
	child := element(name)
	xmlquery.AddChild(parent, child)
	return child
}

// setText attaches text content to an element.
func setText(n *xmlquery.Node, text string) {
	xmlquery.AddChild(n, &xmlquery.Node{Type: xmlquery.TextNode, Data: text})
}

// appendTextElement creates a child element holding only text content.
func appendTextElement(parent *xmlquery.Node, name, text string) *xmlquery.Node {
	child := appendElement(parent, name)
	setText(child, text)
	return child
}

// setAttr sets an attribute on an element.
func setAttr(n *xmlquery.Node, key, value string) {
	xmlquery.AddAttr(n, key, value)
}

// normalizeText collapses runs of whitespace to single spaces and trims the
// ends, the canonical form for element text content.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CheckWellFormed verifies that serialized XML parses cleanly. Entity
// expansion is disabled so the check cannot be abused as an XXE vector.
func CheckWellFormed(data []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Entity = map[string]string{}
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("malformed XML output: %w", err)
		}
	}
}

// Indent renders a node tree as indented XML. Text-bearing elements stay on
// one line; structural elements are broken and indented.
func Indent(root *xmlquery.Node, indent string) []byte {
	if indent == "" {
		indent = "  "
	}
	var buf bytes.Buffer
	indentNode(&buf, root, 0, indent)
	return buf.Bytes()
}

func indentNode(buf *bytes.Buffer, n *xmlquery.Node, depth int, indent string) {
	switch n.Type {
	case xmlquery.DocumentNode:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			indentNode(buf, child, depth, indent)
		}

	case xmlquery.DeclarationNode:
		buf.WriteString("<?xml")
		for _, attr := range n.Attr {
			fmt.Fprintf(buf, " %s=\"%s\"", attr.Name.Local, attr.Value)
		}
		buf.WriteString("?>\n")

	case xmlquery.ElementNode:
		writeIndent(buf, depth, indent)
		buf.WriteString("<")
		buf.WriteString(n.Data)
		for _, attr := range n.Attr {
			fmt.Fprintf(buf, " %s=\"%s\"", attr.Name.Local, escapeAttr(attr.Value))
		}

		if n.FirstChild == nil {
			buf.WriteString("/>\n")
			return
		}

		hasElementChildren := false
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == xmlquery.ElementNode {
				hasElementChildren = true
				break
			}
		}

		buf.WriteString(">")
		if hasElementChildren {
			buf.WriteString("\n")
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				indentNode(buf, child, depth+1, indent)
			}
			writeIndent(buf, depth, indent)
		} else {
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				if child.Type == xmlquery.TextNode {
					xml.EscapeText(buf, []byte(child.Data))
				}
			}
		}
		buf.WriteString("</")
		buf.WriteString(n.Data)
		buf.WriteString(">\n")

	case xmlquery.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			writeIndent(buf, depth, indent)
			xml.EscapeText(buf, []byte(text))
			buf.WriteString("\n")
		}
	}
}

func writeIndent(buf *bytes.Buffer, depth int, indent string) {
	for i := 0; i < depth; i++ {
		buf.WriteString(indent)
	}
}

func escapeAttr(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
