package contentstream

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("content stream syntax error")

// Operation is one operator together with the operands that preceded it.
type Operation struct {
	Operator string
	Operands []types.Object
}

// Number returns operand i as a float64. Integers are widened.
func (op Operation) Number(i int) (float64, bool) {
	if i < 0 || i >= len(op.Operands) {
		return 0, false
	}
	return number(op.Operands[i])
}

// Numbers returns the first n operands as float64 values, or false if any is
// missing or not numeric.
func (op Operation) Numbers(n int) ([]float64, bool) {
	if len(op.Operands) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, ok := number(op.Operands[i])
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// Name returns operand i as a name
func (op Operation) Name(i int) (string, bool) {
	if i < 0 || i >= len(op.Operands) {
		return "", false
	}
	n, ok := op.Operands[i].(types.Name)
	return string(n), ok
}

// Bytes returns operand i as the raw bytes of a string operand
func (op Operation) Bytes(i int) ([]byte, bool) {
	if i < 0 || i >= len(op.Operands) {
		return nil, false
	}
	return StringBytes(op.Operands[i])
}

// StringBytes returns the bytes of a string operand. Literal strings hold
// decoded bytes; hex literals that did not come from Parse are decoded here.
func StringBytes(o types.Object) ([]byte, bool) {
	switch v := o.(type) {
	case types.StringLiteral:
		return []byte(v), true
	case types.HexLiteral:
		b, err := decodeHex([]byte(v))
		if err != nil {
			return nil, false
		}
		return b, true
	}
	return nil, false
}

// Number converts a numeric operand to float64
func number(o types.Object) (float64, bool) {
	switch v := o.(type) {
	case types.Integer:
		return float64(v), true
	case types.Float:
		return float64(v), true
	}
	return 0, false
}

// Parse tokenizes data and returns its operations in stream order.
func Parse(data []byte) ([]Operation, error) {
	return NewParser(data).Parse()
}

// Parser tokenizes a single content stream.
type Parser struct {
	data  []byte
	pos   int
	stack []types.Object
	ops   []Operation
}

// NewParser creates a parser over data
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse runs the parser to the end of the stream.
func (p *Parser) Parse() ([]Operation, error) {
	for {
		p.skipSpaceAndComments()
		if p.eof() {
			break
		}
		c := p.data[p.pos]
		if isRegular(c) && !isNumberStart(c) {
			word := p.readWord()
			switch word {
			case "true":
				p.stack = append(p.stack, types.Boolean(true))
			case "false":
				p.stack = append(p.stack, types.Boolean(false))
			case "null":
				p.stack = append(p.stack, nil)
			case "BI":
				if err := p.skipInlineImage(); err != nil {
					return nil, err
				}
				p.emit("BI")
			default:
				p.emit(word)
			}
			continue
		}
		obj, err := p.readObject()
		if err != nil {
			return nil, err
		}
		p.stack = append(p.stack, obj)
	}
	// Trailing operands without an operator are discarded.
	p.stack = nil
	return p.ops, nil
}

func (p *Parser) emit(operator string) {
	operands := make([]types.Object, len(p.stack))
	copy(operands, p.stack)
	p.ops = append(p.ops, Operation{Operator: operator, Operands: operands})
	p.stack = p.stack[:0]
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *Parser) readObject() (types.Object, error) {
	p.skipSpaceAndComments()
	if p.eof() {
		return nil, p.errorf("unexpected end of stream")
	}
	c := p.data[p.pos]
	switch {
	case isNumberStart(c):
		return p.readNumber()
	case c == '(':
		return p.readLiteral()
	case c == '<' && p.peek(1) == '<':
		return p.readDict()
	case c == '<':
		return p.readHex()
	case c == '/':
		return p.readName(), nil
	case c == '[':
		return p.readArray()
	case isRegular(c):
		switch w := p.readWord(); w {
		case "true":
			return types.Boolean(true), nil
		case "false":
			return types.Boolean(false), nil
		case "null":
			return nil, nil
		default:
			return nil, p.errorf("unexpected keyword %q inside object", w)
		}
	}
	return nil, p.errorf("unexpected character %q", c)
}

func (p *Parser) peek(n int) byte {
	if p.pos+n >= len(p.data) {
		return 0
	}
	return p.data[p.pos+n]
}

func (p *Parser) readWord() string {
	start := p.pos
	for !p.eof() && isRegular(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos])
}

func (p *Parser) readNumber() (types.Object, error) {
	start := p.pos
	if c := p.data[p.pos]; c == '+' || c == '-' {
		p.pos++
	}
	isReal := false
	for !p.eof() {
		c := p.data[p.pos]
		if c == '.' && !isReal {
			isReal = true
		} else if c < '0' || c > '9' {
			break
		}
		p.pos++
	}
	tok := string(p.data[start:p.pos])
	if isReal {
		if tok == "." || tok == "-." || tok == "+." {
			return types.Float(0), nil
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, p.errorf("bad real %q", tok)
		}
		return types.Float(f), nil
	}
	if tok == "+" || tok == "-" {
		return types.Integer(0), nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil, p.errorf("bad integer %q", tok)
	}
	return types.Integer(n), nil
}

func (p *Parser) readLiteral() (types.Object, error) {
	p.pos++ // (
	var buf bytes.Buffer
	depth := 1
	for !p.eof() {
		c := p.data[p.pos]
		p.pos++
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return types.StringLiteral(buf.String()), nil
			}
		case '\\':
			p.readEscape(&buf)
			continue
		}
		buf.WriteByte(c)
	}
	return nil, p.errorf("unterminated string")
}

func (p *Parser) readEscape(buf *bytes.Buffer) {
	if p.eof() {
		return
	}
	c := p.data[p.pos]
	p.pos++
	switch c {
	case 'n':
		buf.WriteByte('\n')
	case 'r':
		buf.WriteByte('\r')
	case 't':
		buf.WriteByte('\t')
	case 'b':
		buf.WriteByte('\b')
	case 'f':
		buf.WriteByte('\f')
	case '\r':
		if !p.eof() && p.data[p.pos] == '\n' {
			p.pos++
		}
	case '\n':
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v := int(c - '0')
		for i := 0; i < 2 && !p.eof(); i++ {
			d := p.data[p.pos]
			if d < '0' || d > '7' {
				break
			}
			v = v*8 + int(d-'0')
			p.pos++
		}
		buf.WriteByte(byte(v))
	default:
		buf.WriteByte(c)
	}
}

func (p *Parser) readHex() (types.Object, error) {
	p.pos++ // <
	end := bytes.IndexByte(p.data[p.pos:], '>')
	if end < 0 {
		return nil, p.errorf("unterminated hex string")
	}
	raw := p.data[p.pos : p.pos+end]
	p.pos += end + 1
	b, err := decodeHex(raw)
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	return types.StringLiteral(b), nil
}

// decodeHex decodes hex digits, ignoring whitespace. An odd trailing digit
// is padded with zero.
func decodeHex(raw []byte) ([]byte, error) {
	out := make([]byte, 0, len(raw)/2+1)
	var hi byte
	half := false
	for _, c := range raw {
		if isSpace(c) {
			continue
		}
		v, ok := hexValue(c)
		if !ok {
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
		if half {
			out = append(out, hi<<4|v)
		} else {
			hi = v
		}
		half = !half
	}
	if half {
		out = append(out, hi<<4)
	}
	return out, nil
}

func (p *Parser) readName() types.Name {
	p.pos++ // /
	var buf bytes.Buffer
	for !p.eof() && isRegular(p.data[p.pos]) {
		c := p.data[p.pos]
		if c == '#' && p.pos+2 < len(p.data) {
			h, ok1 := hexValue(p.data[p.pos+1])
			l, ok2 := hexValue(p.data[p.pos+2])
			if ok1 && ok2 {
				buf.WriteByte(h<<4 | l)
				p.pos += 3
				continue
			}
		}
		buf.WriteByte(c)
		p.pos++
	}
	return types.Name(buf.String())
}

func (p *Parser) readArray() (types.Object, error) {
	p.pos++ // [
	arr := types.Array{}
	for {
		p.skipSpaceAndComments()
		if p.eof() {
			return nil, p.errorf("unterminated array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.readObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (p *Parser) readDict() (types.Object, error) {
	p.pos += 2 // <<
	d := types.Dict{}
	for {
		p.skipSpaceAndComments()
		if p.eof() {
			return nil, p.errorf("unterminated dictionary")
		}
		if p.data[p.pos] == '>' && p.peek(1) == '>' {
			p.pos += 2
			return d, nil
		}
		if p.data[p.pos] != '/' {
			return nil, p.errorf("dictionary key must be a name")
		}
		key := p.readName()
		val, err := p.readObject()
		if err != nil {
			return nil, err
		}
		d[string(key)] = val
	}
}

// skipInlineImage consumes the inline image dictionary and data up to and
// including the EI keyword.
func (p *Parser) skipInlineImage() error {
	p.stack = p.stack[:0]
	for {
		p.skipSpaceAndComments()
		if p.eof() {
			return p.errorf("unterminated inline image")
		}
		if isRegular(p.data[p.pos]) && !isNumberStart(p.data[p.pos]) {
			start := p.pos
			if p.readWord() == "ID" {
				break
			}
			p.pos = start
		}
		if _, err := p.readObject(); err != nil {
			return err
		}
	}
	p.pos++ // single whitespace after ID
	for i := p.pos; i+1 < len(p.data); i++ {
		if p.data[i] == 'E' && p.data[i+1] == 'I' && (i == 0 || isSpace(p.data[i-1])) &&
			(i+2 == len(p.data) || !isRegular(p.data[i+2])) {
			p.pos = i + 2
			return nil
		}
	}
	return p.errorf("inline image without EI")
}

func (p *Parser) skipSpaceAndComments() {
	for !p.eof() {
		c := p.data[p.pos]
		if isSpace(c) {
			p.pos++
			continue
		}
		if c == '%' {
			for !p.eof() && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		return
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isRegular(c byte) bool {
	return !isSpace(c) && !isDelimiter(c)
}

func isNumberStart(c byte) bool {
	return c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
