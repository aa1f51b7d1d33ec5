package dom

import (
	"errors"
	"fmt"
	"strings"
)

// 翻译器支持的CSS子集：类型选择器与*、#id、.class、[attr]、[attr=value]、后代与>子代组合符、逗号分组
var errEmptyCompound = errors.New("empty compound selector")

/*
输入CSS选择器，输出等价的XPath 1.0表达式和错误

每个选择器分组都以.//开头，即只匹配上下文节点的后代；分组之间用|连接，结果按分组先后排列，与goquery的文档顺序不同
*/
func cssToXPath(selector string) (string, error) {
	p := &cssParser{src: selector}
	var groups []string
	for {
		p.skipSpace()
		x, err := p.complex()
		if err != nil {
			return "", err
		}
		groups = append(groups, x)
		if p.eof() {
			break
		}
		if p.peek() != ',' {
			return "", p.unexpected()
		}
		p.pos++
	}
	return strings.Join(groups, " | "), nil
}

type cssParser struct {
	src string
	pos int
}

func (p *cssParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *cssParser) peek() byte {
	return p.src[p.pos]
}

func (p *cssParser) unexpected() error {
	return fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
}

func (p *cssParser) skipSpace() bool {
	start := p.pos
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
	return p.pos > start
}

func (p *cssParser) complex() (string, error) {
	var b strings.Builder
	b.WriteString(".//")
	for {
		step, err := p.compound()
		if err != nil {
			return "", err
		}
		b.WriteString(step)

		spaced := p.skipSpace()
		if p.eof() || p.peek() == ',' {
			return b.String(), nil
		}
		switch {
		case p.peek() == '>':
			p.pos++
			p.skipSpace()
			b.WriteString("/")
		case spaced:
			b.WriteString("//")
		default:
			return "", p.unexpected()
		}
	}
}

func (p *cssParser) compound() (string, error) {
	tag, explicit := "*", false
	if !p.eof() && p.peek() == '*' {
		p.pos++
		explicit = true
	} else if name := p.ident(); name != "" {
		tag, explicit = strings.ToLower(name), true
	}

	var b strings.Builder
	b.WriteString(tag)
	preds := 0
loop:
	for !p.eof() {
		switch p.peek() {
		case '#':
			p.pos++
			id := p.ident()
			if id == "" {
				return "", errors.New("missing id after #")
			}
			b.WriteString("[@id=" + quote(id) + "]")
		case '.':
			p.pos++
			class := p.ident()
			if class == "" {
				return "", errors.New("missing class after .")
			}
			b.WriteString("[contains(concat(' ', normalize-space(@class), ' '), " + quote(" "+class+" ") + ")]")
		case '[':
			pred, err := p.attribute()
			if err != nil {
				return "", err
			}
			b.WriteString(pred)
		default:
			break loop
		}
		preds++
	}
	if !explicit && preds == 0 {
		return "", errEmptyCompound
	}
	return b.String(), nil
}

func (p *cssParser) attribute() (string, error) {
	p.pos++ // [
	p.skipSpace()
	name := p.ident()
	if name == "" {
		return "", errors.New("missing attribute name")
	}
	p.skipSpace()
	if p.eof() {
		return "", errors.New("unterminated attribute selector")
	}
	if p.peek() == ']' {
		p.pos++
		return "[@" + name + "]", nil
	}
	if p.peek() != '=' {
		return "", fmt.Errorf("unsupported attribute operator at offset %d", p.pos)
	}
	p.pos++
	p.skipSpace()
	value, err := p.value()
	if err != nil {
		return "", err
	}
	p.skipSpace()
	if p.eof() || p.peek() != ']' {
		return "", errors.New("unterminated attribute selector")
	}
	p.pos++
	return "[@" + name + "=" + quote(value) + "]", nil
}

func (p *cssParser) value() (string, error) {
	if p.eof() {
		return "", errors.New("missing attribute value")
	}
	q := p.peek()
	if q != '"' && q != '\'' {
		v := p.ident()
		if v == "" {
			return "", errors.New("missing attribute value")
		}
		return v, nil
	}
	end := strings.IndexByte(p.src[p.pos+1:], q)
	if end < 0 {
		return "", errors.New("unterminated string")
	}
	v := p.src[p.pos+1 : p.pos+1+end]
	p.pos += end + 2
	return v, nil
}

func (p *cssParser) ident() string {
	start := p.pos
	for !p.eof() && isIdent(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isIdent(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// XPath 1.0没有转义，含单引号时改用双引号
func quote(s string) string {
	if strings.ContainsRune(s, '\'') {
		return `"` + s + `"`
	}
	return "'" + s + "'"
}
