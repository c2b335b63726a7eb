package corpus

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"

	"github.com/doquery/doquery/internal/document"
)

type yamlCorpus struct {
	Documents []struct {
		ID     string    `yaml:"id"`
		Fields yaml.Node `yaml:"fields"`
	} `yaml:"documents"`
}

// decodeYAML keeps field order by walking the fields mapping node.
func decodeYAML(_ string, data []byte) ([]*document.Document, error) {
	var c yamlCorpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	docs := make([]*document.Document, 0, len(c.Documents))
	for i, entry := range c.Documents {
		doc, err := newDocument(entry.ID)
		if err != nil {
			return nil, err
		}
		fields := &entry.Fields
		if fields.Kind == 0 {
			docs = append(docs, doc)
			continue
		}
		if fields.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("document %d: fields must be a mapping (line %d)", i, fields.Line)
		}
		for j := 0; j+1 < len(fields.Content); j += 2 {
			name, valueNode := fields.Content[j].Value, fields.Content[j+1]
			value, err := yamlValue(valueNode)
			if err != nil {
				return nil, fmt.Errorf("document %d field %q: %w", i, name, err)
			}
			if err := doc.AddField(name, value); err != nil {
				return nil, fmt.Errorf("document %d: %w", i, err)
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func yamlValue(n *yaml.Node) (document.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int":
			if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
				return document.Integer(i), nil
			}
			return document.Text(n.Value), nil
		case "!!float":
			if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return document.Number(f), nil
			}
		}
		return document.Text(n.Value), nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: nested values are not supported", item.Line)
			}
			parts = append(parts, item.Value)
		}
		return document.Text(strings.Join(parts, " ")), nil
	default:
		return nil, fmt.Errorf("line %d: nested values are not supported", n.Line)
	}
}

type tomlCorpus struct {
	Documents []struct {
		ID     string `toml:"id"`
		Fields []struct {
			Name  string `toml:"name"`
			Value any    `toml:"value"`
		} `toml:"fields"`
	} `toml:"documents"`
}

func decodeTOML(_ string, data []byte) ([]*document.Document, error) {
	var c tomlCorpus
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	docs := make([]*document.Document, 0, len(c.Documents))
	for i, entry := range c.Documents {
		doc, err := newDocument(entry.ID)
		if err != nil {
			return nil, err
		}
		for _, f := range entry.Fields {
			if err := doc.AddField(f.Name, document.ValueOf(f.Value)); err != nil {
				return nil, fmt.Errorf("document %d: %w", i, err)
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// decodeHTML yields one document with the page title and the visible body
// text. The ID is derived from the path so reloading a file upserts it.
func decodeHTML(path string, data []byte) ([]*document.Document, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var title string
	var findTitle func(*html.Node) bool
	findTitle = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Title {
			title = strings.TrimSpace(textOf(n))
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if findTitle(c) {
				return true
			}
		}
		return false
	}
	findTitle(root)

	body := findElement(root, atom.Body)
	if body == nil {
		body = root
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(filepath.ToSlash(path))).String()
	doc := document.MustNew(id,
		document.F("title", title),
		document.F("body", strings.Join(strings.Fields(textOf(body)), " ")),
	)
	return []*document.Document{doc}, nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// textOf concatenates text nodes under n, skipping script and style.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func decodeText(path string, data []byte) ([]*document.Document, error) {
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := document.New(id)
	if err != nil {
		return nil, err
	}
	if err := doc.AddField("content", document.Text(data)); err != nil {
		return nil, err
	}
	return []*document.Document{doc}, nil
}

func newDocument(id string) (*document.Document, error) {
	if id == "" {
		id = uuid.NewString()
	}
	return document.New(id)
}
