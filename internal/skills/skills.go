// Package skills holds the embedded skill documents served to the agent as
// MCP resources.
package skills

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//go:embed docs/*.md
var docsFS embed.FS

// Doc is one skill document.
type Doc struct {
	Name    string // file stem, e.g. "running-shortcuts"
	Title   string // first level-1 heading, or the name if none
	Summary string // first paragraph after the title
	Text    string // full markdown source
}

// URI returns the document's MCP resource URI.
func (d Doc) URI() string {
	return fmt.Sprintf("skill://%s", d.Name)
}

// All returns every embedded skill document, sorted by name.
func All() ([]Doc, error) {
	entries, err := fs.ReadDir(docsFS, "docs")
	if err != nil {
		return nil, err
	}

	docs := make([]Doc, 0, len(entries))
	for _, e := range entries {
		data, err := docsFS.ReadFile("docs/" + e.Name())
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(e.Name(), ".md")
		title, summary := describe(data)
		if title == "" {
			title = name
		}
		docs = append(docs, Doc{
			Name:    name,
			Title:   title,
			Summary: summary,
			Text:    string(data),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

// Get returns the skill document with the given name.
func Get(name string) (Doc, error) {
	docs, err := All()
	if err != nil {
		return Doc{}, err
	}
	for _, d := range docs {
		if d.Name == name {
			return d, nil
		}
	}
	return Doc{}, fmt.Errorf("unknown skill document: %s", name)
}

// describe walks the markdown AST for the first H1 and the first paragraph
// that follows it.
func describe(source []byte) (title, summary string) {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	sawTitle := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && !sawTitle {
				title = string(nodeText(node, source))
				sawTitle = true
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if sawTitle && summary == "" {
				summary = string(nodeText(node, source))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return title, summary
}

// nodeText concatenates the text segments under n.
func nodeText(n ast.Node, source []byte) []byte {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
			continue
		}
		b.Write(nodeText(c, source))
	}
	return []byte(b.String())
}
