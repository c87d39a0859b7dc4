package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdx/internal/yamlutil"
)

// KindComponentBlock is the node kind of a block-level component tag.
var KindComponentBlock = ast.NewNodeKind("ComponentBlock")

// ComponentBlock is a self-closing component tag standing on its own,
// such as <Table data={{...}} /> or <Image src="/a.png" width={600} />.
// Err is set when the tag could not be parsed; it is reported at render
// time so the whole render fails.
type ComponentBlock struct {
	ast.BaseBlock
	Name  string
	Attrs Attributes
	Exprs map[string]string
	Err   error

	complete bool
}

// Kind implements ast.Node.
func (n *ComponentBlock) Kind() ast.NodeKind { return KindComponentBlock }

// IsRaw implements ast.Node. Lines hold the tag source verbatim.
func (n *ComponentBlock) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *ComponentBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

func (n *ComponentBlock) source(src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// componentStart matches the opening of a component tag. Component names
// start with an uppercase letter; lowercase tags stay raw HTML.
var componentStart = regexp.MustCompile(`^<[A-Z][A-Za-z0-9_.]*(\s|/|>|$)`)

// componentBlockParser parses component tags at block level.
type componentBlockParser struct{}

// NewComponentBlockParser returns a parser.BlockParser for component tags.
func NewComponentBlockParser() parser.BlockParser {
	return &componentBlockParser{}
}

func (b *componentBlockParser) Trigger() []byte {
	return []byte{'<'}
}

func (b *componentBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) || !componentStart.Match(line[pos:]) {
		return nil, parser.NoChildren
	}

	node := &ComponentBlock{}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	node.complete = tagComplete(node.source(reader.Source()))
	return node, parser.NoChildren
}

func (b *componentBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n := node.(*ComponentBlock)
	if n.complete {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	if line == nil || util.IsBlank(line) {
		return parser.Close
	}

	n.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	n.complete = tagComplete(n.source(reader.Source()))
	return parser.Continue | parser.NoChildren
}

func (b *componentBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	n := node.(*ComponentBlock)
	tag, err := parseComponentTag(n.source(reader.Source()))
	n.Name = tag.name
	if err != nil {
		n.Err = err
		return
	}
	n.Attrs = tag.attrs
	n.Exprs = tag.exprs
}

func (b *componentBlockParser) CanInterruptParagraph() bool { return false }

func (b *componentBlockParser) CanAcceptIndentedLine() bool { return false }

// errIncomplete reports that input ended before the tag was closed.
var errIncomplete = fmt.Errorf("%w: unexpected end of tag", ErrComponentSyntax)

func tagComplete(src string) bool {
	_, err := parseComponentTag(src)
	return !errors.Is(err, errIncomplete)
}

// componentTag is a parsed self-closing component tag.
type componentTag struct {
	name  string
	attrs Attributes
	exprs map[string]string
}

// parseComponentTag reads <Name attr="v" attr='v' attr={expr} flag />.
// Scalar expressions ({600}, {"x"}, {true}) are also exposed as string
// attributes so they can be written to HTML directly.
func parseComponentTag(src string) (componentTag, error) {
	s := &tagScanner{src: src}
	var tag componentTag

	s.skipSpace()
	if !s.consume('<') {
		return tag, fmt.Errorf("%w: expected '<'", ErrComponentSyntax)
	}
	tag.name = s.readName()
	if tag.name == "" {
		return tag, fmt.Errorf("%w: missing component name", ErrComponentSyntax)
	}

	for {
		s.skipSpace()
		if s.eof() {
			return tag, errIncomplete
		}
		if strings.HasPrefix(s.rest(), "/>") {
			s.pos += 2
			break
		}
		if s.peek() == '>' {
			return tag, fmt.Errorf("%w: <%s> must be self-closing", ErrComponentSyntax, tag.name)
		}

		name := s.readName()
		if name == "" {
			return tag, fmt.Errorf("%w: <%s>: unexpected %q", ErrComponentSyntax, tag.name, s.peek())
		}
		s.skipSpace()
		if !s.consume('=') {
			tag.attrs = tag.attrs.Set(name, "")
			continue
		}
		s.skipSpace()

		switch s.peek() {
		case '"', '\'':
			val, err := s.readQuoted()
			if err != nil {
				return tag, err
			}
			tag.attrs = tag.attrs.Set(name, val)
		case '{':
			expr, err := s.readExpression()
			if err != nil {
				return tag, err
			}
			if tag.exprs == nil {
				tag.exprs = make(map[string]string)
			}
			tag.exprs[name] = expr
			if scalar, ok := scalarExpression(expr); ok {
				tag.attrs = tag.attrs.Set(name, scalar)
			}
		case 0:
			return tag, errIncomplete
		default:
			return tag, fmt.Errorf("%w: <%s>: value of %q must be quoted or in braces", ErrComponentSyntax, tag.name, name)
		}
	}

	if strings.TrimSpace(s.rest()) != "" {
		return tag, fmt.Errorf("%w: <%s>: unexpected content after tag", ErrComponentSyntax, tag.name)
	}
	return tag, nil
}

// scalarExpression decodes expr and reports whether it is a string,
// number or boolean.
func scalarExpression(expr string) (string, bool) {
	var v any
	if err := yamlutil.UnmarshalExpression([]byte(expr), &v); err != nil {
		return "", false
	}
	switch v.(type) {
	case string, bool, int, int64, uint64, float64:
		return cellText(v), true
	}
	return "", false
}

type tagScanner struct {
	src string
	pos int
}

func (s *tagScanner) eof() bool    { return s.pos >= len(s.src) }
func (s *tagScanner) rest() string { return s.src[s.pos:] }

func (s *tagScanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *tagScanner) consume(c byte) bool {
	if s.peek() == c && !s.eof() {
		s.pos++
		return true
	}
	return false
}

func (s *tagScanner) skipSpace() {
	for !s.eof() && strings.IndexByte(" \t\r\n", s.src[s.pos]) >= 0 {
		s.pos++
	}
}

func (s *tagScanner) readName() string {
	start := s.pos
	for !s.eof() {
		c := s.src[s.pos]
		isAlpha := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
		isOther := c >= '0' && c <= '9' || c == '_' || c == '-' || c == '.' || c == ':'
		if !isAlpha && !(isOther && s.pos > start) {
			break
		}
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *tagScanner) readQuoted() (string, error) {
	quote := s.src[s.pos]
	s.pos++
	end := strings.IndexByte(s.rest(), quote)
	if end < 0 {
		return "", errIncomplete
	}
	val := s.src[s.pos : s.pos+end]
	s.pos += end + 1
	return val, nil
}

// readExpression reads a balanced {...} and returns its trimmed content.
// Braces inside string literals do not count.
func (s *tagScanner) readExpression() (string, error) {
	s.pos++ // opening brace
	start := s.pos
	depth := 1
	var quote byte

	for ; !s.eof(); s.pos++ {
		c := s.src[s.pos]
		if quote != 0 {
			switch c {
			case '\\':
				s.pos++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				expr := strings.TrimSpace(s.src[start:s.pos])
				s.pos++
				return expr, nil
			}
		}
	}
	return "", errIncomplete
}
