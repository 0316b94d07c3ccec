package document

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nextpkg/plugconf/ce"
	"github.com/nextpkg/plugconf/slogs"
)

// includeTag names the element that pulls external content into the tree.
const includeTag = "include"

// maxIncludeDepth bounds include nesting independently of cycle detection.
const maxIncludeDepth = 16

type parser struct {
	// baseDir resolves relative include paths.
	baseDir string
	// active tracks files on the current include chain for cycle detection.
	active map[string]bool
	depth  int
}

// Parse builds a document tree from r. Include elements are resolved
// relative to the current working directory.
func Parse(r io.Reader) (*Node, error) {
	p := &parser{baseDir: ".", active: make(map[string]bool)}
	return p.parse(r)
}

// ParseFile builds a document tree from the named file. Include elements are
// resolved relative to the including file's directory.
func ParseFile(path string) (*Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ce.ErrParseFailed, err)
	}

	p := &parser{baseDir: filepath.Dir(abs), active: make(map[string]bool)}
	return p.parseFile(abs)
}

func (p *parser) parseFile(abs string) (*Node, error) {
	if p.active[abs] {
		return nil, fmt.Errorf("%w: %s", ce.ErrIncludeCycle, abs)
	}
	if p.depth >= maxIncludeDepth {
		return nil, fmt.Errorf("%w: include depth exceeds %d at %s",
			ce.ErrIncludeCycle, maxIncludeDepth, abs)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ce.ErrParseFailed, err)
	}
	defer f.Close()

	p.active[abs] = true
	p.depth++
	defer func() {
		delete(p.active, abs)
		p.depth--
	}()

	saved := p.baseDir
	p.baseDir = filepath.Dir(abs)
	defer func() { p.baseDir = saved }()

	return p.parse(f)
}

// parse consumes the token stream into a synthetic root whose children are
// the top-level nodes of the stream. A well-formed document yields a single
// element child; included fragments may yield several.
func (p *parser) parse(r io.Reader) (*Node, error) {
	root := &Node{Kind: KindElement}

	dec := xml.NewDecoder(r)

	// Explicit element stack, document root at the bottom.
	stack := []*Node{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ce.ErrParseFailed, err)
		}

		top := stack[len(stack)-1]

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == includeTag {
				ref, err := p.expandInclude(t)
				if err != nil {
					return nil, err
				}
				top.append(ref)
				// Consume the include element's own content; the
				// referenced file replaces it entirely.
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("%w: %w", ce.ErrParseFailed, err)
				}
				continue
			}

			el := &Node{Kind: KindElement, Tag: t.Name.Local}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			top.append(el)
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" {
				top.append(&Node{Kind: KindText, Text: text})
			}

		case xml.Comment:
			top.append(&Node{Kind: KindComment, Text: string(t)})
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: unclosed element <%s>",
			ce.ErrParseFailed, stack[len(stack)-1].Tag)
	}

	// Unwrap the synthetic root when the document has the usual single
	// top-level element.
	if len(root.Children) == 1 && root.Children[0].Kind == KindElement {
		child := root.Children[0]
		child.parent = nil
		child.pos = 0
		return child, nil
	}

	return root, nil
}

// expandInclude parses the referenced file and wraps its top-level content
// in a reference node standing in at the include's position.
func (p *parser) expandInclude(start xml.StartElement) (*Node, error) {
	var file string
	for _, a := range start.Attr {
		if a.Name.Local == "file" {
			file = a.Value
		}
	}
	if file == "" {
		return nil, fmt.Errorf("%w: include element without file attribute",
			ce.ErrParseFailed)
	}

	if !filepath.IsAbs(file) {
		file = filepath.Join(p.baseDir, file)
	}

	slogs.Debug("Expanding include", "file", file)

	parsed, err := p.parseFile(file)
	if err != nil {
		return nil, err
	}

	ref := &Node{Kind: KindReference, Tag: includeTag}
	if parsed.Kind == KindElement && parsed.Tag == "" {
		// Fragment with several top-level nodes: inline them directly.
		for _, c := range parsed.Children {
			ref.append(c)
		}
	} else {
		ref.append(parsed)
	}
	return ref, nil
}
