// Package grammar implements the RFC 3986 character classes and escaping rules
// used to encode and validate the components of relative references.
package grammar

//go:generate go tool errtrace -w .

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrMalformedInput Error = "malformed input"
)

// IsAlpha checks ALPHA rule.
func IsAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

// IsDigit checks DIGIT rule.
func IsDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsUnreserved checks unreserved rule.
func IsUnreserved(c byte) bool {
	return IsAlpha(c) || IsDigit(c) || c == '-' || c == '.' || c == '_' || c == '~'
}

var subDelims = [256]bool{
	'!': true, '$': true, '&': true, '\'': true, '(': true, ')': true,
	'*': true, '+': true, ',': true, ';': true, '=': true,
}

// IsSubDelim checks sub-delims rule.
func IsSubDelim(c byte) bool { return subDelims[c] }

// IsPChar checks pchar rule without the pct-encoded alternative.
func IsPChar(c byte) bool { return IsUnreserved(c) || IsSubDelim(c) || c == ':' || c == '@' }

// ShouldEscapePathSegment reports whether c must be escaped inside a single path segment.
func ShouldEscapePathSegment(c byte) bool { return !IsPChar(c) }

// ShouldEscapePath reports whether c must be escaped inside a path.
func ShouldEscapePath(c byte) bool { return c != '/' && !IsPChar(c) }

// ShouldEscapeQuery reports whether c must be escaped inside a query.
func ShouldEscapeQuery(c byte) bool { return c != '/' && c != '?' && !IsPChar(c) }

// SchemeEnd returns the index of the colon terminating a leading scheme in s,
// or -1 if s does not start with a scheme.
func SchemeEnd[T ~string | ~[]byte](s T) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case IsAlpha(c):
		case IsDigit(c) || c == '+' || c == '-' || c == '.':
			if i == 0 {
				return -1
			}
		case c == ':':
			if i == 0 {
				return -1
			}
			return i
		default:
			return -1
		}
	}
	return -1
}
