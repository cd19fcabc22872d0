package feedparse

import (
	"encoding/xml"
	"io"
	"regexp"
	"strings"
)

// xmlNode is a minimal namespace-tolerant XML tree node. Local names are
// lowercased; space is whatever the decoder reported, which is the
// namespace URI when the prefix was declared and the raw prefix when it
// was not.
type xmlNode struct {
	space    string
	local    string
	attrs    []xml.Attr
	text     string
	children []*xmlNode
}

// attr returns the value of the named attribute (local-name match).
func (n *xmlNode) attr(name string) string {
	for _, a := range n.attrs {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value
		}
	}

	return ""
}

// decodeTree parses XML text into an xmlNode tree. The decoder runs in
// permissive mode; feeds in the wild are rarely well-formed.
func decodeTree(text string) (*xmlNode, error) {
	decoder := xml.NewDecoder(strings.NewReader(text))
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	root := &xmlNode{}
	stack := []*xmlNode{root}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Keep whatever was parsed before the malformed region.
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &xmlNode{
				space: t.Name.Space,
				local: strings.ToLower(t.Name.Local),
				attrs: t.Attr,
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, node)
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			stack[len(stack)-1].text += string(t)
		}
	}

	if len(root.children) == 0 {
		return nil, ErrNotAFeed
	}

	return root, nil
}

// nsTable maps namespace prefixes to URIs. The empty prefix holds the
// default namespace.
type nsTable map[string]string

// xmlnsPattern textually matches xmlns declarations. Building the table
// by scanning beats the DOM namespace API here: real feeds use prefixes
// they never declare.
var xmlnsPattern = regexp.MustCompile(`xmlns(?::([A-Za-z0-9_.-]+))?\s*=\s*["']([^"']+)["']`)

// Well-known namespace URIs seeded when a feed uses the prefix without
// declaring it.
const (
	atomNS        = "http://www.w3.org/2005/Atom"
	mediaNS       = "http://search.yahoo.com/mrss/"
	dcNS          = "http://purl.org/dc/elements/1.1/"
	contentNS     = "http://purl.org/rss/1.0/modules/content/"
	itunesNS      = "http://www.itunes.com/dtds/podcast-1.0.dtd"
	mediaAltNS    = "http://video.search.yahoo.com/mrss"
	mediaAltNSTwo = "http://www.rssboard.org/media-rss"
)

// scanNamespaces builds the prefix table by scanning the raw feed text
// for xmlns declarations, then seeds well-known prefixes that feeds use
// without declaring.
func scanNamespaces(text string) nsTable {
	table := nsTable{}

	for _, match := range xmlnsPattern.FindAllStringSubmatch(text, -1) {
		table[match[1]] = match[2]
	}

	seed := map[string]string{
		"atom":    atomNS,
		"media":   mediaNS,
		"dc":      dcNS,
		"content": contentNS,
		"itunes":  itunesNS,
	}
	for prefix, uri := range seed {
		if _, ok := table[prefix]; !ok {
			table[prefix] = uri
		}
	}

	return table
}

// matches reports whether a node satisfies a candidate tag of the form
// "local" or "prefix:local". A bare candidate matches the empty space
// and the default namespace; a prefixed candidate matches the raw
// prefix, the declared URI and the known alternate media URIs.
func (ns nsTable) matches(n *xmlNode, candidate string) bool {
	prefix, local, hasPrefix := strings.Cut(candidate, ":")
	if !hasPrefix {
		local = candidate
		prefix = ""
	}

	if n.local != strings.ToLower(local) {
		return false
	}

	if !hasPrefix {
		return n.space == "" || n.space == ns[""]
	}

	if n.space == prefix || n.space == ns[prefix] {
		return true
	}

	// Several vendors publish media: elements under variant URIs.
	if prefix == "media" {
		return n.space == mediaAltNS || n.space == mediaAltNSTwo
	}

	return false
}

// find returns the first child of n matching any of the candidate tags,
// tried in order.
func (ns nsTable) find(n *xmlNode, candidates ...string) *xmlNode {
	for _, candidate := range candidates {
		for _, child := range n.children {
			if ns.matches(child, candidate) {
				return child
			}
		}
	}

	return nil
}

// findAll returns every child of n matching the candidate tag.
func (ns nsTable) findAll(n *xmlNode, candidate string) []*xmlNode {
	var found []*xmlNode

	for _, child := range n.children {
		if ns.matches(child, candidate) {
			found = append(found, child)
		}
	}

	return found
}

// findDeep searches the whole subtree for nodes with the given local
// name, in document order.
func findDeep(n *xmlNode, local string) []*xmlNode {
	var found []*xmlNode

	for _, child := range n.children {
		if child.local == local {
			found = append(found, child)
		}
		found = append(found, findDeep(child, local)...)
	}

	return found
}

// textOf returns the trimmed text of the first matching child, or "".
func (ns nsTable) textOf(n *xmlNode, candidates ...string) string {
	node := ns.find(n, candidates...)
	if node == nil {
		return ""
	}

	return strings.TrimSpace(node.text)
}
