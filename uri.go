package reluri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/reluri/internal/grammar"
	"github.com/ghettovoice/reluri/internal/util"
)

// Synthetic scheme and host that turn a relative reference into an absolute URL
// acceptable for [net/url]. They never leave this file.
const (
	baseScheme = "reluri"
	baseHost   = "_"
	basePrefix = baseScheme + "://" + baseHost
)

// Values maps a query key to a list of values.
type Values = url.Values

// URI represents a relative URI reference: a path with optional query and fragment,
// without scheme and authority.
//
// The zero value is an empty reference, the same as returned by [New].
type URI struct {
	url url.URL
	// url.URL drops a present but empty fragment
	hasFrag bool
}

// New returns an empty relative URI: empty path, no query, no fragment.
func New() *URI { return &URI{} }

// Parse parses a relative URI reference from the given input s (string or []byte).
//
// The input must not contain a scheme or an authority, otherwise a [*ParseError]
// wrapping [ErrUnexpectedScheme] or [ErrUnexpectedAuthority] is returned.
// Syntax errors are reported as [*ParseError] wrapping [ErrMalformedInput].
// Empty input is valid and results in an empty URI.
// Dot segments ("." and "..") are removed from the path.
func Parse[T ~string | ~[]byte](s T) (*URI, error) {
	in := string(s)
	if i := grammar.SchemeEnd(in); i >= 0 {
		return nil, newParseError(in, ErrUnexpectedScheme, "scheme %q", in[:i])
	}
	if strings.HasPrefix(in, "//") {
		return nil, newParseError(in, ErrUnexpectedAuthority)
	}

	abs, err := url.Parse(absolute(in))
	if err != nil {
		return nil, newParseError(in, ErrMalformedInput, err)
	}
	if abs.Scheme != baseScheme || abs.Host != baseHost || abs.User != nil || abs.Opaque != "" {
		return nil, newParseError(in, ErrMalformedInput, "unexpected URI structure")
	}
	// net/url does not validate the query
	if err := grammar.ValidateEscapes(abs.RawQuery); err != nil {
		return nil, newParseError(in, ErrMalformedInput, err)
	}

	u := &URI{hasFrag: strings.IndexByte(in, '#') >= 0}
	raw := removeDotSegments(grammar.UpperEscapes(abs.EscapedPath()))
	u.url.Path, u.url.RawPath = grammar.Unescape(raw), raw
	if abs.ForceQuery || abs.RawQuery != "" {
		u.setRawQuery(abs.RawQuery)
	}
	if abs.Fragment != "" {
		u.url.Fragment = abs.Fragment
		u.url.RawFragment = grammar.UpperEscapes(abs.EscapedFragment())
	}
	return u, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse[T ~string | ~[]byte](s T) *URI {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// absolute attaches the synthetic prefix to the relative reference s.
// A rootless path gets rooted, and "/.//" is read back as "//", see [URI.relative].
func absolute(s string) string {
	if strings.HasPrefix(s, "/.//") {
		s = s[2:]
	}
	if s == "" || s[0] == '/' || s[0] == '?' || s[0] == '#' {
		return basePrefix + s
	}
	return basePrefix + "/" + s
}

// relative renders u through the synthetic absolute URL and strips the prefix off.
// A path starting with "//" is written as "/.//" to not be taken for an authority.
func (u *URI) relative(opts *RenderOptions) string {
	abs := u.url
	abs.Scheme, abs.Host = baseScheme, baseHost
	s := strings.TrimPrefix(abs.String(), basePrefix)
	switch {
	case strings.HasPrefix(s, "//"):
		s = "/." + s
	case abs.Path == "" && opts.rootPath():
		s = "/" + s
	}
	if u.hasFrag && abs.Fragment == "" {
		s += "#"
	}
	return s
}

func (u *URI) orNew() *URI {
	if u == nil {
		return New()
	}
	return u
}

// Path returns the percent-encoded path.
// It is either empty or starts with "/".
func (u *URI) Path() string {
	if u == nil {
		return ""
	}
	return u.url.EscapedPath()
}

// Query returns the raw query string and whether the query is present.
func (u *URI) Query() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.url.RawQuery, u.url.ForceQuery || u.url.RawQuery != ""
}

// Fragment returns the percent-encoded fragment and whether the fragment is present.
func (u *URI) Fragment() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.url.EscapedFragment(), u.hasFrag
}

// RawSegments returns the "/" separated path segments, each percent-encoded.
// An empty path has no segments, the root path "/" has one empty segment.
func (u *URI) RawSegments() []string {
	p := u.Path()
	if p == "" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}

// Segments returns the decoded path segments.
func (u *URI) Segments() []string {
	segs := u.RawSegments()
	for i := range segs {
		segs[i] = unescapeSegment(segs[i])
	}
	return segs
}

// AllSegments returns an iterator over the decoded path segments.
func (u *URI) AllSegments() iter.Seq[string] { return slices.Values(u.Segments()) }

// QueryPairs returns the query parsed as a list of form-encoded pairs.
// Pairs are returned in order, duplicates included.
func (u *URI) QueryPairs() []Pair {
	if u == nil {
		return nil
	}
	return parsePairs(u.url.RawQuery)
}

// AllQueryPairs returns an iterator over the query pairs.
func (u *URI) AllQueryPairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, p := range u.QueryPairs() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// QueryValues returns the query pairs grouped by key.
func (u *URI) QueryValues() Values {
	vals := make(Values)
	for _, p := range u.QueryPairs() {
		vals.Add(p.Key, p.Value)
	}
	return vals
}

// WithPath replaces the path with p.
// Characters not allowed in a path are percent-encoded, valid escapes are kept.
// A non-empty path without leading "/" is rooted, dot segments are removed.
func (u *URI) WithPath(p string) *URI {
	u = u.orNew()
	if p != "" && p[0] != '/' {
		p = "/" + p
	}
	raw := removeDotSegments(grammar.UpperEscapes(grammar.EscapeKeepEncoded(p, grammar.ShouldEscapePath)))
	u.url.Path, u.url.RawPath = grammar.Unescape(raw), raw
	return u
}

// WithPathSegments passes a mutable view of the path segments to fn
// and replaces the path with the segments left in the view when fn returns.
//
// Segments are encoded on write, so "/", "?" or "%" inside a segment never
// changes the path structure.
func (u *URI) WithPathSegments(fn func(segs *PathSegments)) *URI {
	u = u.orNew()
	if fn == nil {
		return u
	}
	segs := &PathSegments{segs: u.Segments()}
	fn(segs)
	u.url.Path, u.url.RawPath = encodeSegments(segs.segs)
	return u
}

// WithQuery replaces the query with the raw string q.
// The query stays present even if q is empty.
func (u *URI) WithQuery(q string) *URI {
	u = u.orNew()
	u.setRawQuery(q)
	return u
}

// WithoutQuery removes the query.
func (u *URI) WithoutQuery() *URI {
	u = u.orNew()
	u.url.RawQuery, u.url.ForceQuery = "", false
	return u
}

func (u *URI) setRawQuery(q string) {
	u.url.RawQuery = grammar.UpperEscapes(grammar.EscapeKeepEncoded(q, grammar.ShouldEscapeQuery))
	u.url.ForceQuery = true
}

// WithQueryPairs passes a mutable view of the query pairs to fn
// and replaces the query with the form-encoded pairs left in the view when fn returns.
// The query is removed if no pairs are left.
func (u *URI) WithQueryPairs(fn func(q *QueryPairs)) *URI {
	u = u.orNew()
	if fn == nil {
		return u
	}
	q := &QueryPairs{pairs: u.QueryPairs()}
	fn(q)
	if len(q.pairs) == 0 {
		return u.WithoutQuery()
	}
	u.url.RawQuery, u.url.ForceQuery = encodePairs(q.pairs), false
	return u
}

// WithFragment sets the fragment to f, percent-encoded on write.
// An empty f results in a present but empty fragment rendered as a trailing "#".
func (u *URI) WithFragment(f string) *URI {
	u = u.orNew()
	u.url.Fragment, u.url.RawFragment, u.hasFrag = f, "", true
	return u
}

// WithoutFragment removes the fragment along with the "#" separator.
func (u *URI) WithoutFragment() *URI {
	u = u.orNew()
	u.url.Fragment, u.url.RawFragment, u.hasFrag = "", "", false
	return u
}

// IsZero reports whether u is nil or an empty reference.
func (u *URI) IsZero() bool {
	if u == nil {
		return true
	}
	_, hasQuery := u.Query()
	return u.url.Path == "" && !hasQuery && !u.hasFrag
}

// Clone returns a copy of the URI.
func (u *URI) Clone() *URI {
	if u == nil {
		return nil
	}
	u2 := *u
	return &u2
}

// RenderTo writes the URI to the provided writer.
func (u *URI) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if u == nil {
		return 0, nil
	}
	return errtrace.Wrap2(io.WriteString(w, u.relative(opts)))
}

// Render returns the string representation of the URI.
func (u *URI) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the canonical relative reference "path[?query][#fragment]".
func (u *URI) String() string {
	if u == nil {
		return ""
	}
	return u.relative(nil)
}

// Format implements [fmt.Formatter] for custom formatting of the URI.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
	case 'v':
		if !f.Flag('#') {
			fmt.Fprint(f, u.String())
			return
		}
		if u == nil {
			fmt.Fprint(f, "(*reluri.URI)(nil)")
			return
		}
		fmt.Fprintf(f, "reluri.MustParse(%q)", u.String())
	default:
		fmt.Fprintf(f, "%%!%c(*reluri.URI=%s)", verb, u.String())
	}
}

// LogValue implements [slog.LogValuer].
func (u *URI) LogValue() slog.Value { return slog.StringValue(u.String()) }

// Equal compares this URI with another for equality.
// URIs are equal when their canonical forms are the same.
func (u *URI) Equal(val any) bool {
	var other *URI
	switch v := val.(type) {
	case URI:
		other = &v
	case *URI:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return u.String() == other.String()
}

// Compare orders URIs by their canonical forms. A nil URI sorts first.
func (u *URI) Compare(other *URI) int {
	switch {
	case u == other:
		return 0
	case u == nil:
		return -1
	case other == nil:
		return 1
	}
	return strings.Compare(u.String(), other.String())
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
