package domain

import "strings"

// PackagePath is the ordered sequence of segments that locates a unit.
// Paths containing "/" are Go import paths and split on "/", everything else splits on ".".
type PackagePath struct {
	raw      string
	segments []string
}

// NewPackagePath parses s into a PackagePath. The empty string is the root package.
func NewPackagePath(s string) PackagePath {
	s = strings.TrimSpace(s)
	if s == "" {
		return PackagePath{}
	}
	return PackagePath{raw: s, segments: strings.Split(s, separatorFor(s))}
}

// String returns the path as it was written.
func (p PackagePath) String() string {
	return p.raw
}

// Segments returns a copy of the path segments.
func (p PackagePath) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Len returns the number of segments.
func (p PackagePath) Len() int {
	return len(p.segments)
}

// IsRoot reports whether the path has no segments.
func (p PackagePath) IsRoot() bool {
	return len(p.segments) == 0
}

// Equal reports whether two paths have the same text.
func (p PackagePath) Equal(other PackagePath) bool {
	return p.raw == other.raw
}

func separatorFor(s string) string {
	if strings.Contains(s, "/") {
		return "/"
	}
	return "."
}
