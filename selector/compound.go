package selector

import (
	"strconv"
	"strings"
)

// A complex selector is a chain of compound selectors joined by combinators.
// The scanner below splits the raw source text of one complex selector into
// compounds and classifies the simple selectors inside each compound. It does
// not implement selector semantics; it only recovers the cheap discriminators
// (tag, id, classes) needed for rule-map buckets and ancestor fingerprints.

// compound is one compound selector plus the combinator that joins it to its
// right-hand neighbor (0 for the rightmost compound).
type compound struct {
	text       string
	combinator byte // ' ', '>', '+', '~' or 0
}

// features are the discriminators recovered from one compound. opaque is set
// when the compound contains pieces the scanner does not understand (e.g.
// namespaces); an opaque compound contributes no fingerprints and lands in
// the universal bucket.
type features struct {
	tag     string
	id      string
	classes []string
	opaque  bool
}

// splitGroup splits a selector group on top-level commas.
func splitGroup(source string) []string {
	var parts []string
	var depth int
	var quote byte
	start := 0
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\\':
			i++
		case c == '\'' || c == '"':
			quote = c
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, source[start:i])
			start = i + 1
		}
	}
	parts = append(parts, source[start:])
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// splitComplex splits the source of one complex selector into compounds.
func splitComplex(source string) []compound {
	var compounds []compound
	var depth int
	var quote byte
	var cur strings.Builder
	sawSpace := false

	flush := func(comb byte) {
		text := strings.TrimSpace(cur.String())
		cur.Reset()
		if text == "" {
			return
		}
		compounds = append(compounds, compound{text: text, combinator: comb})
	}

	for i := 0; i < len(source); i++ {
		c := source[i]
		if quote != 0 {
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(source) {
				cur.WriteByte(source[i+1])
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case c == '\'' || c == '"':
			quote = c
			cur.WriteByte(c)
		case c == '[' || c == '(':
			depth++
			cur.WriteByte(c)
		case c == ']' || c == ')':
			if depth > 0 {
				depth--
			}
			cur.WriteByte(c)
		case depth > 0:
			cur.WriteByte(c)
		case c == '>' || c == '+' || c == '~':
			flush(c)
			if len(compounds) > 0 {
				compounds[len(compounds)-1].combinator = c
			}
			sawSpace = false
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			if cur.Len() > 0 {
				sawSpace = true
			}
		default:
			if sawSpace && cur.Len() > 0 {
				// descendant combinator between the buffered compound
				// and the one starting here
				flush(' ')
				if len(compounds) > 0 {
					compounds[len(compounds)-1].combinator = ' '
				}
			}
			sawSpace = false
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(source) {
				// an escaped character never acts as combinator or space; a
				// hex escape additionally owns its terminating whitespace
				if isHexDigit(source[i+1]) {
					j := i + 1
					for j < len(source) && j-(i+1) < 6 && isHexDigit(source[j]) {
						j++
					}
					if j < len(source) && isSpaceChar(source[j]) {
						j++
					}
					cur.WriteString(source[i+1 : j])
					i = j - 1
				} else {
					cur.WriteByte(source[i+1])
					i++
				}
			}
		}
	}
	flush(0)
	return compounds
}

// hasPseudo reports whether the selector source contains a pseudo-class or
// pseudo-element at top level (outside brackets and strings). Attribute
// values containing ':' do not count.
func hasPseudo(source string) bool {
	var depth int
	var quote byte
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\\':
			i++
		case c == '\'' || c == '"':
			quote = c
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			if depth > 0 {
				depth--
			}
		case c == ':' && depth == 0:
			return true
		}
	}
	return false
}

// hasSiblingCombinator reports whether the selector source contains '+' or
// '~' at top level. Such selectors depend on an element's preceding siblings
// and must be revalidated before two elements may share a result.
func hasSiblingCombinator(source string) bool {
	var depth int
	var quote byte
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\\':
			i++
		case c == '\'' || c == '"':
			quote = c
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			if depth > 0 {
				depth--
			}
		case (c == '+' || c == '~') && depth == 0:
			return true
		}
	}
	return false
}

func isIdentChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		c >= 0x80
}

func isSpaceChar(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'f') ||
		(c >= 'A' && c <= 'F')
}

// scanCompound classifies the simple selectors of one compound.
func scanCompound(text string) features {
	var f features
	i := 0
	// readIdent decodes CSS escape sequences, so the returned identifier is
	// the same string the element side reports for its tag/id/class. The
	// selector '.a\.b' must hash and bucket as class "a.b", never as the raw
	// source bytes.
	readIdent := func() string {
		var sb strings.Builder
		for i < len(text) {
			c := text[i]
			if c == '\\' && i+1 < len(text) {
				i++
				if isHexDigit(text[i]) {
					start := i
					for i < len(text) && i-start < 6 && isHexDigit(text[i]) {
						i++
					}
					code, err := strconv.ParseUint(text[start:i], 16, 32)
					if err != nil || code == 0 || code > 0x10ffff {
						f.opaque = true
						return ""
					}
					sb.WriteRune(rune(code))
					// a single whitespace character terminates a hex escape
					if i < len(text) && isSpaceChar(text[i]) {
						i++
					}
					continue
				}
				sb.WriteByte(text[i])
				i++
				continue
			}
			if !isIdentChar(c) {
				break
			}
			sb.WriteByte(c)
			i++
		}
		return sb.String()
	}
	// optional type selector first
	if i < len(text) && text[i] == '*' {
		f.tag = "*"
		i++
	} else if i < len(text) && (isIdentChar(text[i]) || text[i] == '\\') {
		f.tag = strings.ToLower(readIdent())
	}
	if f.opaque {
		return f
	}
	for i < len(text) {
		switch text[i] {
		case '#':
			i++
			f.id = readIdent()
		case '.':
			i++
			f.classes = append(f.classes, readIdent())
		case '[':
			// attribute selectors narrow nothing we index on; skip
			depth := 1
			i++
			var quote byte
			for i < len(text) && depth > 0 {
				c := text[i]
				if quote != 0 {
					if c == '\\' {
						i++
					} else if c == quote {
						quote = 0
					}
				} else if c == '\'' || c == '"' {
					quote = c
				} else if c == '[' {
					depth++
				} else if c == ']' {
					depth--
				}
				i++
			}
		case '|':
			// namespaces are out of scope; treat the compound as opaque
			f.opaque = true
			return f
		default:
			f.opaque = true
			return f
		}
		if f.opaque {
			return f
		}
	}
	return f
}
