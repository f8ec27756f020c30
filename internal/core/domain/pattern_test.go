package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
)

func TestPattern_Matches(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"service..", "service", true},
		{"service..", "service.impl", true},
		{"service..", "service.impl.deep", true},
		{"service..", "servicefoo", false},
		{"service..", "api.service", false},
		{"..web..", "tga.checkers.web", true},
		{"..web..", "web.controllers", true},
		{"..web..", "web", true},
		{"..web..", "webhook", false},
		{"..web..", "tga.webhook.api", false},
		{"tga.checkers.service..", "tga.checkers.service.CheckerService", true},
		{"tga.checkers.service..", "tga.checkers.repository", false},
		{"tga.checkers", "tga.checkers", true},
		{"tga.checkers", "tga.checkers.web", false},
		{"..", "", true},
		{"..", "anything.at.all", true},
		{"a..b", "a.b", true},
		{"a..b", "a.x.y.b", true},
		{"a..b", "a.x.y.c", false},
		{"..*Service", "tga.checkers.CheckerService", true},
		{"..*Service", "tga.checkers.CheckerRepository", false},
		{"example.com/app/...", "example.com/app", true},
		{"example.com/app/...", "example.com/app/internal/web", true},
		{"example.com/app/...", "example.com/application", false},
		{".../web/...", "example.com/app/internal/web/handlers", true},
		{".../web/...", "example.com/app/webhook", false},
		{"example.com/app/internal/*", "example.com/app/internal/core", true},
		{"example.com/app/internal/*", "example.com/app/internal/core/domain", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.path, func(t *testing.T) {
			p, err := domain.ParsePattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Matches(domain.NewPackagePath(tt.path)))
		})
	}
}

func TestParsePattern_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "a...b", "...", "a..b.", "tga.[web", "example.com//web"} {
		t.Run(raw, func(t *testing.T) {
			_, err := domain.ParsePattern(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidPattern), "got %v", err)
		})
	}
}

func TestPatternSet(t *testing.T) {
	set := domain.MustParsePatternSet("tga.checkers.service..", "tga.checkers.repository..")

	assert.True(t, set.Matches(domain.NewPackagePath("tga.checkers.repository")))
	assert.True(t, set.Matches(domain.NewPackagePath("tga.checkers.service.impl")))
	assert.False(t, set.Matches(domain.NewPackagePath("tga.checkers.web")))
	assert.Equal(t, []string{"tga.checkers.service..", "tga.checkers.repository.."}, set.Strings())

	var empty domain.PatternSet
	assert.False(t, empty.Matches(domain.NewPackagePath("tga")))

	_, err := domain.ParsePatternSet([]string{"ok..", "bad...x"})
	require.ErrorIs(t, err, domain.ErrInvalidPattern)
}

func TestPackagePath(t *testing.T) {
	p := domain.NewPackagePath("go.trai.ch/strata/internal/app")
	assert.Equal(t, []string{"go.trai.ch", "strata", "internal", "app"}, p.Segments())
	assert.Equal(t, 4, p.Len())

	j := domain.NewPackagePath("tga.checkers.web")
	assert.Equal(t, []string{"tga", "checkers", "web"}, j.Segments())

	assert.True(t, domain.NewPackagePath("").IsRoot())
	assert.True(t, j.Equal(domain.NewPackagePath("tga.checkers.web")))
}
