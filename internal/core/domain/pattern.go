package domain

import (
	"path"
	"strings"

	"go.trai.ch/zerr"
)

// Pattern selects package paths.
//
// A pattern is a sequence of segment tokens anchored at both ends. In dotted form
// ("tga.checkers.service..") an empty gap between separators, or at either end, matches
// zero or more segments. In slash form ("example.com/app/.../web") a ".." or "..." segment
// does the same. Literal segments may use path.Match metacharacters.
type Pattern struct {
	raw    string
	tokens []patternToken
}

type patternToken struct {
	wildcard bool
	literal  string
	glob     bool
}

// ParsePattern parses s into a Pattern.
func ParsePattern(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Pattern{}, invalidPattern(s, "pattern is empty")
	}

	var (
		tokens []patternToken
		err    error
	)
	if strings.Contains(s, "/") {
		tokens, err = parseSlashPattern(s)
	} else {
		tokens, err = parseDottedPattern(s)
	}
	if err != nil {
		return Pattern{}, err
	}

	return Pattern{raw: s, tokens: compactWildcards(tokens)}, nil
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern as it was written.
func (p Pattern) String() string {
	return p.raw
}

// Matches reports whether the package path is selected by the pattern.
func (p Pattern) Matches(pkg PackagePath) bool {
	return matchTokens(p.tokens, pkg.segments)
}

func parseDottedPattern(s string) ([]patternToken, error) {
	var tokens []patternToken
	for i, part := range strings.Split(s, "..") {
		if i > 0 {
			tokens = append(tokens, patternToken{wildcard: true})
		}
		if part == "" {
			continue
		}
		for seg := range strings.SplitSeq(part, ".") {
			tok, err := literalToken(s, seg)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

func parseSlashPattern(s string) ([]patternToken, error) {
	var tokens []patternToken
	for seg := range strings.SplitSeq(s, "/") {
		if seg == ".." || seg == "..." {
			tokens = append(tokens, patternToken{wildcard: true})
			continue
		}
		tok, err := literalToken(s, seg)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func literalToken(pattern, seg string) (patternToken, error) {
	if seg == "" {
		return patternToken{}, invalidPattern(pattern, "empty segment")
	}
	if !strings.ContainsAny(seg, `*?[\`) {
		return patternToken{literal: seg}, nil
	}
	if _, err := path.Match(seg, ""); err != nil {
		return patternToken{}, invalidPattern(pattern, "malformed glob segment "+seg)
	}
	return patternToken{literal: seg, glob: true}, nil
}

func compactWildcards(tokens []patternToken) []patternToken {
	out := tokens[:0]
	for _, tok := range tokens {
		if tok.wildcard && len(out) > 0 && out[len(out)-1].wildcard {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func (t patternToken) matches(seg string) bool {
	if !t.glob {
		return t.literal == seg
	}
	ok, _ := path.Match(t.literal, seg)
	return ok
}

func matchTokens(tokens []patternToken, segs []string) bool {
	if len(tokens) == 0 {
		return len(segs) == 0
	}
	head := tokens[0]
	if head.wildcard {
		for i := 0; i <= len(segs); i++ {
			if matchTokens(tokens[1:], segs[i:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 || !head.matches(segs[0]) {
		return false
	}
	return matchTokens(tokens[1:], segs[1:])
}

func invalidPattern(pattern, reason string) error {
	err := zerr.Wrap(ErrInvalidPattern, reason)
	return zerr.With(err, "pattern", pattern)
}

// PatternSet is a disjunction of patterns. The empty set matches nothing.
type PatternSet []Pattern

// ParsePatternSet parses every entry of raw, failing on the first invalid one.
func ParsePatternSet(raw []string) (PatternSet, error) {
	set := make(PatternSet, 0, len(raw))
	for _, s := range raw {
		p, err := ParsePattern(s)
		if err != nil {
			return nil, err
		}
		set = append(set, p)
	}
	return set, nil
}

// MustParsePatternSet is like ParsePatternSet but panics on error.
func MustParsePatternSet(raw ...string) PatternSet {
	set, err := ParsePatternSet(raw)
	if err != nil {
		panic(err)
	}
	return set
}

// Matches reports whether any pattern in the set matches pkg.
func (s PatternSet) Matches(pkg PackagePath) bool {
	for _, p := range s {
		if p.Matches(pkg) {
			return true
		}
	}
	return false
}

// Strings returns the patterns as written.
func (s PatternSet) Strings() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.String()
	}
	return out
}
