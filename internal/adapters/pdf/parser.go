package pdf

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockKind classifies a flow block extracted from quotation markup.
type blockKind int

const (
	blockHeading1 blockKind = iota
	blockHeading2
	blockHeading3
	blockParagraph
	blockListItem
)

type block struct {
	kind blockKind
	text string
}

// parseBlocks flattens restyled quotation markup into an ordered list of
// flow blocks. Inline markup (strong, em, a) is folded into the block
// text; only the block-level structure survives into the document.
func parseBlocks(markup string) ([]block, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, err
	}

	var blocks []block
	for _, n := range nodes {
		walk(n, &blocks)
	}

	return blocks, nil
}

func walk(n *html.Node, blocks *[]block) {
	switch n.Type {
	case html.TextNode:
		// Stray text between elements still renders as a paragraph.
		if text := collapse(n.Data); text != "" {
			*blocks = append(*blocks, block{kind: blockParagraph, text: text})
		}

		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.H1:
			appendBlock(blocks, blockHeading1, n)
			return
		case atom.H2:
			appendBlock(blocks, blockHeading2, n)
			return
		case atom.H3, atom.H4, atom.H5, atom.H6:
			appendBlock(blocks, blockHeading3, n)
			return
		case atom.P:
			appendBlock(blocks, blockParagraph, n)
			return
		case atom.Li:
			appendBlock(blocks, blockListItem, n)
			return
		case atom.Script, atom.Style:
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, blocks)
	}
}

func appendBlock(blocks *[]block, kind blockKind, n *html.Node) {
	text := collapse(textContent(n))
	if text == "" {
		return
	}

	*blocks = append(*blocks, block{kind: kind, text: text})
}

func textContent(n *html.Node) string {
	var sb strings.Builder

	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}

		if n.Type == html.ElementNode && n.DataAtom == atom.Br {
			sb.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)

	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
