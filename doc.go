// Package reluri provides parsing, manipulation and rendering of relative URI references,
// that is URIs without scheme and authority, such as "/foo/bar?foo=bar#baz".
//
// # Overview
//
// The [URI] type holds a path, an optional query and an optional fragment. It is built
// on top of [net/url]: the reference is attached to a fixed private scheme and host,
// parsed by [net/url.Parse] and rendered by [net/url.URL.String], and the synthetic
// prefix is stripped off again. The prefix is never visible through the API.
//
// # Parsing
//
//	u, err := reluri.Parse("/foo/bar?foo=bar#baz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Inputs with a scheme ("http://example.com/foo", "mailto:x") or an authority
// ("//example.com/foo") are rejected with a [*ParseError] that wraps
// [ErrUnexpectedScheme] or [ErrUnexpectedAuthority]. Malformed percent-encoding
// and control characters are reported with [ErrMalformedInput]:
//
//	_, err := reluri.Parse("//example.com/foo")
//	errors.Is(err, reluri.ErrUnexpectedAuthority) // true
//
// Percent-escapes are normalized to upper-case hex digits and dot segments are
// removed ("../a/./b" becomes "/a/b"), so the output of [URI.String] parses back
// to an equal URI.
//
// # Building
//
// Mutators modify the receiver and return it, so calls can be chained.
// Path segments and query pairs are edited through views passed to a callback:
//
//	u := reluri.New().
//	    WithPathSegments(func(s *reluri.PathSegments) { s.Extend("foo", "bar") }).
//	    WithQueryPairs(func(q *reluri.QueryPairs) { q.Append("foo", "bar") }).
//	    WithFragment("baz")
//	u.String() // "/foo/bar?foo=bar#baz"
//
// Values written through the views are encoded on write: a segment containing "/"
// is rendered as "%2F" and stays a single segment, query pairs use
// application/x-www-form-urlencoded encoding.
//
// # Empty path
//
// An empty path renders as an empty string: New().String() is "".
// Use [RenderOptions] with RootPath to render it as "/".
//
// # Fragment
//
// [URI.WithFragment] with an empty string keeps a present but empty fragment
// (a trailing "#"), while [URI.WithoutFragment] removes it.
//
// # Thread Safety
//
// URI values are not safe for concurrent modification.
// Use [URI.Clone] to hand a copy to another goroutine.
package reluri
