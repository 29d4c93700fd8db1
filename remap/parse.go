package remap

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Parse parses JSON text into a Value. Object member order is preserved; a
// duplicate key overwrites the earlier member in place.
func Parse(input string) (*Value, error) {
	p := &parser{input: input, line: 1, col: 1}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return nil, p.errorf("unexpected %q after top-level value", p.input[p.pos])
	}
	return v, nil
}

// ParseBytes parses JSON bytes into a Value.
func ParseBytes(data []byte) (*Value, error) {
	return Parse(string(data))
}

// parser scans JSON text, tracking line/column for error reporting.
type parser struct {
	input string
	pos   int
	line  int
	col   int
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Pos:     Position{Line: p.line, Column: p.col, Offset: p.pos},
	}
}

// advance moves past one byte, keeping line/column counters current.
func (p *parser) advance() {
	if p.input[p.pos] == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	p.pos++
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.advance()
		default:
			return
		}
	}
}

func (p *parser) parseValue() (*Value, error) {
	if p.pos >= len(p.input) {
		return nil, p.errorf("unexpected end of input")
	}
	switch c := p.input[p.pos]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case c == 't':
		if err := p.expect("true"); err != nil {
			return nil, err
		}
		return Bool(true), nil
	case c == 'f':
		if err := p.expect("false"); err != nil {
			return nil, err
		}
		return Bool(false), nil
	case c == 'n':
		if err := p.expect("null"); err != nil {
			return nil, err
		}
		return Null(), nil
	default:
		return nil, p.errorf("unexpected %q", c)
	}
}

func (p *parser) expect(lit string) error {
	if !strings.HasPrefix(p.input[p.pos:], lit) {
		return p.errorf("invalid literal")
	}
	for range lit {
		p.advance()
	}
	return nil
}

func (p *parser) parseObject() (*Value, error) {
	p.advance() // '{'
	obj := Object()
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == '}' {
		p.advance()
		return obj, nil
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != '"' {
			return nil, p.errorf("expected object key")
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != ':' {
			return nil, p.errorf("expected ':' after object key")
		}
		p.advance()
		p.skipSpace()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj.SetMember(key, val)
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, p.errorf("unterminated object")
		}
		switch p.input[p.pos] {
		case ',':
			p.advance()
		case '}':
			p.advance()
			return obj, nil
		default:
			return nil, p.errorf("expected ',' or '}' in object")
		}
	}
}

func (p *parser) parseArray() (*Value, error) {
	p.advance() // '['
	arr := Array()
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == ']' {
		p.advance()
		return arr, nil
	}
	for {
		p.skipSpace()
		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr.arrVal = append(arr.arrVal, elem)
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, p.errorf("unterminated array")
		}
		switch p.input[p.pos] {
		case ',':
			p.advance()
		case ']':
			p.advance()
			return arr, nil
		default:
			return nil, p.errorf("expected ',' or ']' in array")
		}
	}
}

func (p *parser) parseString() (string, error) {
	p.advance() // opening quote
	var sb strings.Builder
	for {
		if p.pos >= len(p.input) {
			return "", p.errorf("unterminated string")
		}
		c := p.input[p.pos]
		switch {
		case c == '"':
			p.advance()
			return sb.String(), nil
		case c == '\\':
			p.advance()
			if p.pos >= len(p.input) {
				return "", p.errorf("unterminated escape")
			}
			esc := p.input[p.pos]
			switch esc {
			case '"', '\\', '/':
				sb.WriteByte(esc)
				p.advance()
			case 'b':
				sb.WriteByte('\b')
				p.advance()
			case 'f':
				sb.WriteByte('\f')
				p.advance()
			case 'n':
				sb.WriteByte('\n')
				p.advance()
			case 'r':
				sb.WriteByte('\r')
				p.advance()
			case 't':
				sb.WriteByte('\t')
				p.advance()
			case 'u':
				p.advance()
				r, err := p.parseHexRune()
				if err != nil {
					return "", err
				}
				if utf16.IsSurrogate(r) && p.pos+1 < len(p.input) &&
					p.input[p.pos] == '\\' && p.input[p.pos+1] == 'u' {
					p.advance()
					p.advance()
					r2, err := p.parseHexRune()
					if err != nil {
						return "", err
					}
					if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
						r = dec
					} else {
						sb.WriteRune(utf8.RuneError)
						r = r2
					}
				}
				if utf16.IsSurrogate(r) {
					r = utf8.RuneError
				}
				sb.WriteRune(r)
			default:
				return "", p.errorf("invalid escape '\\%c'", esc)
			}
		case c < 0x20:
			return "", p.errorf("control character in string")
		default:
			sb.WriteByte(c)
			p.advance()
		}
	}
}

func (p *parser) parseHexRune() (rune, error) {
	if p.pos+4 > len(p.input) {
		return 0, p.errorf("truncated unicode escape")
	}
	n, err := strconv.ParseUint(p.input[p.pos:p.pos+4], 16, 32)
	if err != nil {
		return 0, p.errorf("invalid unicode escape")
	}
	for i := 0; i < 4; i++ {
		p.advance()
	}
	return rune(n), nil
}

func (p *parser) parseNumber() (*Value, error) {
	start := p.pos
	if p.input[p.pos] == '-' {
		p.advance()
	}
	digits := 0
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		digits++
		p.advance()
	}
	if digits == 0 {
		return nil, p.errorf("invalid number")
	}
	// JSON forbids leading zeros: "0" is fine, "01" is not.
	intPart := p.input[start:p.pos]
	if strings.HasPrefix(intPart, "-") {
		intPart = intPart[1:]
	}
	if len(intPart) > 1 && intPart[0] == '0' {
		return nil, p.errorf("leading zero in number")
	}
	if p.pos < len(p.input) && p.input[p.pos] == '.' {
		p.advance()
		digits = 0
		for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
			digits++
			p.advance()
		}
		if digits == 0 {
			return nil, p.errorf("missing digits after decimal point")
		}
	}
	if p.pos < len(p.input) && (p.input[p.pos] == 'e' || p.input[p.pos] == 'E') {
		p.advance()
		if p.pos < len(p.input) && (p.input[p.pos] == '+' || p.input[p.pos] == '-') {
			p.advance()
		}
		digits = 0
		for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
			digits++
			p.advance()
		}
		if digits == 0 {
			return nil, p.errorf("missing exponent digits")
		}
	}
	f, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return nil, p.errorf("invalid number %q", p.input[start:p.pos])
	}
	return Number(f), nil
}
