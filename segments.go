package reluri

import (
	"iter"
	"net/url"
	"slices"
	"strings"

	"github.com/ghettovoice/reluri/internal/grammar"
	"github.com/ghettovoice/reluri/internal/util"
)

// PathSegments is a mutable view of URI path segments, see [URI.WithPathSegments].
//
// Segments are held decoded. The view maps to the path as follows:
// no segments is the empty path, a single empty segment is "/",
// ["a", ""] is "/a/". Use [PathSegments.PopIfEmpty] before [PathSegments.Push]
// to append to a path that ends with "/".
//
// Index based methods ignore out of range indexes.
type PathSegments struct {
	segs []string
}

// Len returns the number of segments.
func (s *PathSegments) Len() int { return len(s.segs) }

// At returns the segment at index i.
func (s *PathSegments) At(i int) (string, bool) {
	if i < 0 || i >= len(s.segs) {
		return "", false
	}
	return s.segs[i], true
}

// All returns an iterator over indexes and segments.
func (s *PathSegments) All() iter.Seq2[int, string] { return slices.All(s.segs) }

// Push appends a segment.
func (s *PathSegments) Push(seg string) *PathSegments {
	s.segs = append(s.segs, seg)
	return s
}

// Extend appends segments.
func (s *PathSegments) Extend(segs ...string) *PathSegments {
	s.segs = append(s.segs, segs...)
	return s
}

// Pop removes the last segment.
func (s *PathSegments) Pop() *PathSegments {
	if len(s.segs) > 0 {
		s.segs = s.segs[:len(s.segs)-1]
	}
	return s
}

// PopIfEmpty removes the last segment if it is empty.
func (s *PathSegments) PopIfEmpty() *PathSegments {
	if n := len(s.segs); n > 0 && s.segs[n-1] == "" {
		s.segs = s.segs[:n-1]
	}
	return s
}

// Clear removes all segments.
func (s *PathSegments) Clear() *PathSegments {
	s.segs = s.segs[:0]
	return s
}

// Set replaces the segment at index i.
func (s *PathSegments) Set(i int, seg string) *PathSegments {
	if i >= 0 && i < len(s.segs) {
		s.segs[i] = seg
	}
	return s
}

// Insert inserts a segment at index i, i equal to [PathSegments.Len] appends.
func (s *PathSegments) Insert(i int, seg string) *PathSegments {
	if i >= 0 && i <= len(s.segs) {
		s.segs = slices.Insert(s.segs, i, seg)
	}
	return s
}

// Delete removes the segment at index i.
func (s *PathSegments) Delete(i int) *PathSegments {
	if i >= 0 && i < len(s.segs) {
		s.segs = slices.Delete(s.segs, i, i+1)
	}
	return s
}

// encodeSegments joins decoded segments into the decoded and the percent-encoded path.
func encodeSegments(segs []string) (path, rawPath string) {
	if len(segs) == 0 {
		return "", ""
	}

	dec, enc := util.GetStringBuilder(), util.GetStringBuilder()
	defer util.FreeStringBuilder(dec)
	defer util.FreeStringBuilder(enc)

	for _, seg := range segs {
		dec.WriteByte('/')
		dec.WriteString(seg)
		enc.WriteByte('/')
		if isDotSegment(seg) {
			// written as %2E so that parsing does not drop it
			enc.WriteString(strings.Repeat("%2E", len(seg)))
			continue
		}
		enc.WriteString(grammar.Escape(seg, grammar.ShouldEscapePathSegment))
	}
	return dec.String(), enc.String()
}

func isDotSegment(seg string) bool { return seg == "." || seg == ".." }

// removeDotSegments removes "." and ".." segments from the rooted escaped path p,
// as described in RFC 3986 section 5.2.4.
// Percent-encoded dots are not dot segments.
// A trailing dot segment leaves a trailing slash, ".." above the root is dropped.
func removeDotSegments(p string) string {
	if p == "" || !strings.Contains(p, ".") {
		return p
	}

	segs := strings.Split(p[1:], "/")
	out := make([]string, 0, len(segs))
	for i, seg := range segs {
		last := i == len(segs)-1
		switch seg {
		case ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
			continue
		}
		if last {
			out = append(out, "")
		}
	}
	return "/" + strings.Join(out, "/")
}

func unescapeSegment(s string) string {
	if v, err := url.PathUnescape(s); err == nil {
		return v
	}
	return s
}
