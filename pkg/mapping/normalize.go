package mapping

import (
	"strings"
	"unicode"

	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
)

// tokenize splits an identifier into lowercase tokens on case boundaries
// and on the usual separators, so "order_id", "OrderId" and "order-id"
// all yield ["order","id"].
func tokenize(ident string) []string {
	var tokens []string
	var curr []rune

	flush := func() {
		if len(curr) > 0 {
			tokens = append(tokens, strings.ToLower(string(curr)))
			curr = curr[:0]
		}
	}

	runes := []rune(ident)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			// case boundary: lower→Upper, or the end of an acronym run
			if i > 0 && (unicode.IsLower(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				flush()
			}
			curr = append(curr, r)
		default:
			curr = append(curr, r)
		}
	}
	flush()
	return tokens
}

// normalizeName folds an identifier to its canonical comparable form:
// lowercase with separators removed.
func normalizeName(ident string) string {
	return strings.Join(tokenize(ident), "")
}

// normalizePath folds each path segment, collapsing the array item marker
// and the literal "item" convention some schemas use into one segment, so
// an XSD repeated element and a JSON array line up positionally.
func normalizePath(path []string) []string {
	res := make([]string, 0, len(path))
	for _, seg := range path {
		if seg == field.ItemMarker || strings.EqualFold(seg, "item") {
			res = append(res, field.ItemMarker)
			continue
		}
		res = append(res, normalizeName(seg))
	}
	return res
}
