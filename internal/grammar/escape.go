package grammar

import (
	"bytes"

	"braces.dev/errtrace"

	"github.com/ghettovoice/reluri/internal/errorutil"
)

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
// Malformed sequences are kept as is.
func Unescape[T ~string | ~[]byte](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isEscape(s, i) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Escape escapes s by replacing each char matched by shouldEscape callback to the hex form "% HEXDIG HEXDIG".
// Percent signs are escaped too unless shouldEscape says otherwise, so the result decodes back to s.
func Escape[T ~string | ~[]byte](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsUnreserved(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			writeEscape(&b, s[i])
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// EscapeKeepEncoded works like [Escape] but leaves valid "% HEXDIG HEXDIG" sequences untouched.
// A percent sign that does not start a valid sequence is escaped.
func EscapeKeepEncoded[T ~string | ~[]byte](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsUnreserved(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case isEscape(s, i):
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 2
		case s[i] == '%' || shouldEscape(s[i]):
			writeEscape(&b, s[i])
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// UpperEscapes upper-cases hex digits of every valid escape sequence in s.
func UpperEscapes[T ~string | ~[]byte](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isEscape(s, i) {
			b.WriteByte('%')
			b.WriteByte(upperhex[unhex(s[i+1])])
			b.WriteByte(upperhex[unhex(s[i+2])])
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// ValidateEscapes checks that every percent sign in s starts a "% HEXDIG HEXDIG" sequence.
func ValidateEscapes[T ~string | ~[]byte](s T) error {
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if !isEscape(s, i) {
			end := min(i+3, len(s))
			return errtrace.Wrap(errorutil.NewWrapperError(
				ErrMalformedInput,
				"invalid escape %q at offset %d", string(s[i:end]), i,
			))
		}
		i += 2
	}
	return nil
}

func isEscape[T ~string | ~[]byte](s T, i int) bool {
	return s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2])
}

func writeEscape(b *bytes.Buffer, c byte) {
	b.WriteByte('%')
	b.WriteByte(upperhex[c>>4])
	b.WriteByte(upperhex[c&15])
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
