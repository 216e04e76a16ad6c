package calldata

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/lmittmann/w3"
)

var ErrInvalidSignature = errors.New("invalid function signature")

// Solidity-only words that may follow a parameter list: visibility,
// mutability and inheritance markers.
var modifiers = map[string]bool{
	"external":   true,
	"public":     true,
	"internal":   true,
	"private":    true,
	"view":       true,
	"pure":       true,
	"payable":    true,
	"nonpayable": true,
	"virtual":    true,
	"override":   true,
}

var locations = map[string]bool{
	"memory":   true,
	"calldata": true,
	"storage":  true,
}

// Normalize turns a human-readable function signature into its canonical
// form. "function enter(uint256 amount)" becomes "enter(uint256)".
func Normalize(signature string) (string, error) {
	fn, err := parse(signature)
	if err != nil {
		return "", err
	}
	return fn.Signature, nil
}

// parse binds signature with w3 after dropping the Solidity keywords w3's
// grammar does not know.
func parse(signature string) (*w3.Func, error) {
	s := strip(signature)
	fn, err := w3.NewFunc(s, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSignature, signature, err)
	}
	return fn, nil
}

func strip(signature string) string {
	s := strings.TrimSpace(signature)
	if head, rest, ok := cutSpace(s); ok && head == "function" {
		s = rest
	}

	open := strings.IndexByte(s, '(')
	if open == -1 {
		return s
	}
	end := matchParen(s, open)
	if end == -1 {
		return s
	}
	if !trailerOnly(s[end+1:]) {
		return s
	}
	return s[:open] + "(" + stripParams(s[open+1:end]) + ")"
}

// cutSpace splits s around its first run of whitespace.
func cutSpace(s string) (head, rest string, ok bool) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i == -1 {
		return s, "", false
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace), true
}

// trailerOnly reports whether s holds nothing but modifiers and an optional
// trailing returns clause.
func trailerOnly(s string) bool {
	for {
		s = strings.TrimSpace(s)
		if s == "" {
			return true
		}
		if strings.HasPrefix(s, "returns") {
			rest := strings.TrimSpace(s[len("returns"):])
			if !strings.HasPrefix(rest, "(") {
				return false
			}
			end := matchParen(rest, 0)
			return end != -1 && strings.TrimSpace(rest[end+1:]) == ""
		}
		word, rest, _ := cutSpace(s)
		if !modifiers[word] {
			return false
		}
		s = rest
	}
}

// stripParams drops data locations and the tuple keyword from a parameter list.
func stripParams(list string) string {
	var b strings.Builder
	for i := 0; i < len(list); {
		if !isWordByte(list[i]) {
			b.WriteByte(list[i])
			i++
			continue
		}
		j := i
		for j < len(list) && isWordByte(list[j]) {
			j++
		}
		word := list[i:j]
		switch {
		case locations[word]:
		case word == "tuple" && strings.HasPrefix(strings.TrimSpace(list[j:]), "("):
		default:
			b.WriteString(word)
		}
		i = j
	}
	return b.String()
}

// matchParen returns the index of the parenthesis closing the one at open,
// or -1.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
