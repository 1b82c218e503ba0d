package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/quillang/quill"
)

// Eval evaluates one statement of attribute-path notation against a scope.
// The notation covers navigation and assignment over the attribute
// protocol, enough to drive and inspect the runtime without a grammar:
//
//	name                      resolve name on the scope
//	recv.attr                 receiver retrieval, binding methods
//	recv.?attr                safe retrieval, Null when absent
//	recv::attr                raw retrieval, no binding
//	recv.attr(arg, ...)       method call
//	name(arg, ...)            call a scope attribute
//	recv.attr = expr          assignment through .=
//	:0                        owner of the Nth stack frame
//
// with Number and "Text" literals and the true, false, and null keywords.
func Eval(vm *quill.VM, scope *quill.Object, src string) (*quill.Object, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{vm: vm, scope: scope, toks: toks}
	v, err := p.stmt()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q", p.peek().text)
	}
	return v, nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokNumber
	tokString
	tokFrame
	tokDot
	tokSafeDot
	tokRawGet
	tokLParen
	tokRParen
	tokComma
	tokAssign
)

type token struct {
	kind tokKind
	text string
}

func lex(src string) ([]token, error) {
	var toks []token
	rs := []rune(src)
	i := 0
	for i < len(rs) {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case r == ',':
			toks = append(toks, token{tokComma, ","})
			i++
		case r == '.':
			if i+1 < len(rs) && rs[i+1] == '?' {
				toks = append(toks, token{tokSafeDot, ".?"})
				i += 2
			} else {
				toks = append(toks, token{tokDot, "."})
				i++
			}
		case r == ':':
			if i+1 < len(rs) && rs[i+1] == ':' {
				toks = append(toks, token{tokRawGet, "::"})
				i += 2
				break
			}
			j := i + 1
			for j < len(rs) && unicode.IsDigit(rs[j]) {
				j++
			}
			if j == i+1 {
				return nil, fmt.Errorf("expected frame index after %q", ":")
			}
			toks = append(toks, token{tokFrame, string(rs[i+1 : j])})
			i = j
		case r == '"':
			j := i + 1
			var b strings.Builder
			for j < len(rs) && rs[j] != '"' {
				if rs[j] == '\\' && j+1 < len(rs) {
					j++
					switch rs[j] {
					case 'n':
						b.WriteByte('\n')
					case 't':
						b.WriteByte('\t')
					default:
						b.WriteRune(rs[j])
					}
				} else {
					b.WriteRune(rs[j])
				}
				j++
			}
			if j >= len(rs) {
				return nil, errors.New("unterminated string")
			}
			toks = append(toks, token{tokString, b.String()})
			i = j + 1
		case unicode.IsDigit(r):
			j := i
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.' && j+1 < len(rs) && unicode.IsDigit(rs[j+1])) {
				j++
			}
			toks = append(toks, token{tokNumber, string(rs[i:j])})
			i = j
		case isOpRune(r):
			j := i
			for j < len(rs) && isOpRune(rs[j]) {
				j++
			}
			text := string(rs[i:j])
			if text == "=" {
				toks = append(toks, token{tokAssign, text})
			} else {
				toks = append(toks, token{tokIdent, text})
			}
			i = j
		case unicode.IsLetter(r) || r == '_' || r == '@':
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_' || rs[j] == '@') {
				j++
			}
			toks = append(toks, token{tokIdent, string(rs[i:j])})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q", string(r))
		}
	}
	return append(toks, token{tokEOF, ""}), nil
}

func isOpRune(r rune) bool {
	return strings.ContainsRune("+-*/<>=!", r)
}

type parser struct {
	vm    *quill.VM
	scope *quill.Object
	toks  []token
	pos   int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// result is an evaluated value or a not-yet-retrieved attribute place, kept
// unresolved so a trailing assignment can write to it instead of reading.
type result struct {
	value *quill.Object
	recv  *quill.Object
	key   string
}

func (p *parser) load(r result) (*quill.Object, error) {
	if r.value != nil {
		return r.value, nil
	}
	return p.vm.DotGetAttr(r.recv, quill.Intern(r.key))
}

func (p *parser) stmt() (*quill.Object, error) {
	r, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokAssign {
		return p.load(r)
	}
	p.next()
	if r.value != nil {
		return nil, errors.New("cannot assign to this expression")
	}
	rhs, err := p.expr()
	if err != nil {
		return nil, err
	}
	v, err := p.load(rhs)
	if err != nil {
		return nil, err
	}
	return p.vm.CallAttr(r.recv, quill.LitDotSet, quill.Args{p.vm.NewText(r.key), v})
}

func (p *parser) expr() (result, error) {
	r, err := p.primary()
	if err != nil {
		return result{}, err
	}
	for {
		switch p.peek().kind {
		case tokDot:
			p.next()
			name, err := p.attrName()
			if err != nil {
				return result{}, err
			}
			if p.peek().kind == tokLParen {
				recv, err := p.load(r)
				if err != nil {
					return result{}, err
				}
				args, err := p.args()
				if err != nil {
					return result{}, err
				}
				v, err := p.vm.CallAttr(recv, quill.Intern(name), args)
				if err != nil {
					return result{}, err
				}
				r = result{value: v}
				continue
			}
			recv, err := p.load(r)
			if err != nil {
				return result{}, err
			}
			r = result{recv: recv, key: name}
		case tokSafeDot:
			p.next()
			name, err := p.attrName()
			if err != nil {
				return result{}, err
			}
			recv, err := p.load(r)
			if err != nil {
				return result{}, err
			}
			v, err := p.vm.CallAttr(recv, quill.LitSafeGet, quill.Args{p.vm.NewText(name)})
			if err != nil {
				return result{}, err
			}
			r = result{value: v}
		case tokRawGet:
			p.next()
			name, err := p.attrName()
			if err != nil {
				return result{}, err
			}
			recv, err := p.load(r)
			if err != nil {
				return result{}, err
			}
			v, err := p.vm.GetAttr(recv, quill.Intern(name))
			if err != nil {
				return result{}, err
			}
			r = result{value: v}
		default:
			return r, nil
		}
	}
}

func (p *parser) attrName() (string, error) {
	t := p.next()
	if t.kind != tokIdent {
		return "", fmt.Errorf("expected attribute name, got %q", t.text)
	}
	return t.text, nil
}

func (p *parser) primary() (result, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return result{}, err
		}
		return result{value: p.vm.NewNumber(v)}, nil
	case tokString:
		return result{value: p.vm.NewText(t.text)}, nil
	case tokFrame:
		n, err := strconv.Atoi(t.text)
		if err != nil {
			return result{}, err
		}
		f, ok := p.vm.Binding.FrameAt(n)
		if !ok {
			return result{}, fmt.Errorf("no stack frame %d", n)
		}
		return result{value: f.Owner}, nil
	case tokIdent:
		switch t.text {
		case "true":
			return result{value: p.vm.True}, nil
		case "false":
			return result{value: p.vm.False}, nil
		case "null":
			return result{value: p.vm.Null}, nil
		}
		if p.peek().kind == tokLParen {
			args, err := p.args()
			if err != nil {
				return result{}, err
			}
			v, err := p.vm.CallAttr(p.scope, quill.Intern(t.text), args)
			if err != nil {
				return result{}, err
			}
			return result{value: v}, nil
		}
		return result{recv: p.scope, key: t.text}, nil
	case tokLParen:
		r, err := p.expr()
		if err != nil {
			return result{}, err
		}
		if p.next().kind != tokRParen {
			return result{}, errors.New("expected )")
		}
		v, err := p.load(r)
		if err != nil {
			return result{}, err
		}
		return result{value: v}, nil
	default:
		return result{}, fmt.Errorf("unexpected %q", t.text)
	}
}

func (p *parser) args() (quill.Args, error) {
	if t := p.next(); t.kind != tokLParen {
		return nil, fmt.Errorf("expected (, got %q", t.text)
	}
	if p.peek().kind == tokRParen {
		p.next()
		return nil, nil
	}
	var args quill.Args
	for {
		r, err := p.expr()
		if err != nil {
			return nil, err
		}
		v, err := p.load(r)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		switch t := p.next(); t.kind {
		case tokComma:
			// next argument
		case tokRParen:
			return args, nil
		default:
			return nil, fmt.Errorf("expected , or ), got %q", t.text)
		}
	}
}
