package reluri_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/reluri"
)

func TestURI_WithPathSegments(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		edit     func(s *reluri.PathSegments)
		want     string
		wantSegs []string
	}{
		{
			"append to empty",
			"",
			func(s *reluri.PathSegments) { s.Extend("foo", "bar") },
			"/foo/bar",
			[]string{"foo", "bar"},
		},
		{
			"push keeps query and fragment",
			"/a?q=1#f",
			func(s *reluri.PathSegments) { s.Push("b") },
			"/a/b?q=1#f",
			[]string{"a", "b"},
		},
		{
			"clear",
			"/foo/bar/baz?q",
			func(s *reluri.PathSegments) { s.Clear() },
			"?q",
			nil,
		},
		{
			"push after trailing slash",
			"/a/",
			func(s *reluri.PathSegments) { s.PopIfEmpty().Push("b") },
			"/a/b",
			[]string{"a", "b"},
		},
		{
			"push to root",
			"/",
			func(s *reluri.PathSegments) { s.PopIfEmpty().Push("b") },
			"/b",
			[]string{"b"},
		},
		{
			"pop if not empty",
			"/a/b",
			func(s *reluri.PathSegments) { s.PopIfEmpty() },
			"/a/b",
			[]string{"a", "b"},
		},
		{
			"pop",
			"/a/b",
			func(s *reluri.PathSegments) { s.Pop().Pop().Pop() },
			"",
			nil,
		},
		{
			"trailing slash",
			"/a",
			func(s *reluri.PathSegments) { s.Push("") },
			"/a/",
			[]string{"a", ""},
		},
		{
			"root",
			"",
			func(s *reluri.PathSegments) { s.Push("") },
			"/",
			[]string{""},
		},
		{
			"empty first segments",
			"",
			func(s *reluri.PathSegments) { s.Extend("", "", "x") },
			"/.///x",
			[]string{"", "", "x"},
		},
		{
			"leading dot segment",
			"",
			func(s *reluri.PathSegments) { s.Extend(".", "", "x") },
			"/%2E//x",
			[]string{".", "", "x"},
		},
		{
			"parent segment",
			"/a",
			func(s *reluri.PathSegments) { s.Push("..").Push(".") },
			"/a/%2E%2E/%2E",
			[]string{"a", "..", "."},
		},
		{
			"set",
			"/a/b/c",
			func(s *reluri.PathSegments) { s.Set(1, "x").Set(5, "y").Set(-1, "z") },
			"/a/x/c",
			[]string{"a", "x", "c"},
		},
		{
			"insert",
			"/a/c",
			func(s *reluri.PathSegments) { s.Insert(1, "b").Insert(3, "d").Insert(9, "e") },
			"/a/b/c/d",
			[]string{"a", "b", "c", "d"},
		},
		{
			"delete",
			"/a/b/c",
			func(s *reluri.PathSegments) { s.Delete(0).Delete(7) },
			"/b/c",
			[]string{"b", "c"},
		},
		{
			"decoded view",
			"/a%2Fb",
			func(s *reluri.PathSegments) {
				if v, _ := s.At(0); v == "a/b" {
					s.Push("ok")
				}
			},
			"/a%2Fb/ok",
			[]string{"a/b", "ok"},
		},
		{
			"reserved chars encoded",
			"",
			func(s *reluri.PathSegments) { s.Push("a/b?c#d") },
			"/a%2Fb%3Fc%23d",
			[]string{"a/b?c#d"},
		},
		{
			"percent encoded",
			"",
			func(s *reluri.PathSegments) { s.Push("%41 b") },
			"/%2541%20b",
			[]string{"%41 b"},
		},
		{
			"sub-delims kept",
			"",
			func(s *reluri.PathSegments) { s.Push("a;b=c,d@e:f") },
			"/a;b=c,d@e:f",
			[]string{"a;b=c,d@e:f"},
		},
		{
			"utf-8",
			"",
			func(s *reluri.PathSegments) { s.Push("café") },
			"/caf%C3%A9",
			[]string{"café"},
		},
		{
			"nil func",
			"/a%2fb",
			nil,
			"/a%2Fb",
			[]string{"a/b"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u := reluri.MustParse(c.input).WithPathSegments(c.edit)
			if got := u.String(); got != c.want {
				t.Errorf("u.String() = %q, want %q", got, c.want)
			}
			if diff := cmp.Diff(u.Segments(), c.wantSegs); diff != "" {
				t.Errorf("u.Segments() mismatch\ndiff (-got +want):\n%v", diff)
			}

			u2, err := reluri.Parse(u.String())
			if err != nil {
				t.Fatalf("reluri.Parse(%q) error = %v, want nil", u.String(), err)
			}
			if diff := cmp.Diff(u2.Segments(), c.wantSegs); diff != "" {
				t.Errorf("reluri.Parse(%q).Segments() mismatch\ndiff (-got +want):\n%v", u.String(), diff)
			}
		})
	}
}

func TestPathSegments_View(t *testing.T) {
	t.Parallel()

	reluri.MustParse("/a/b/c").WithPathSegments(func(s *reluri.PathSegments) {
		if got, want := s.Len(), 3; got != want {
			t.Errorf("s.Len() = %d, want %d", got, want)
		}
		if _, ok := s.At(3); ok {
			t.Errorf("s.At(3) found, want missing")
		}

		var got []string
		for i, seg := range s.All() {
			if i > 1 {
				break
			}
			got = append(got, seg)
		}
		if diff := cmp.Diff(got, []string{"a", "b"}); diff != "" {
			t.Errorf("s.All() mismatch\ndiff (-got +want):\n%v", diff)
		}
	})
}

func TestURI_WithPathSegments_EncodingSafety(t *testing.T) {
	t.Parallel()

	for _, seg := range []string{"a/b", "a?b", "a#b", "a%2Fb", "..", " ", ""} {
		t.Run(seg, func(t *testing.T) {
			t.Parallel()

			u := reluri.New().WithPathSegments(func(s *reluri.PathSegments) { s.Push("x").Push(seg) })
			u2 := reluri.MustParse(u.String())
			if diff := cmp.Diff(u2.Segments(), []string{"x", seg}); diff != "" {
				t.Errorf("reluri.MustParse(%q).Segments() mismatch\ndiff (-got +want):\n%v", u.String(), diff)
			}
		})
	}
}
