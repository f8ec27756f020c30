package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
)

func TestRule_AppliesTo(t *testing.T) {
	r := domain.Rule{
		Name:      "no-web",
		Subjects:  domain.MustParsePatternSet("tga.checkers.."),
		Except:    domain.MustParsePatternSet("tga.checkers.web.."),
		Forbidden: domain.MustParsePatternSet("..web.."),
	}

	assert.True(t, r.AppliesTo(domain.NewUnit("tga.checkers.service.S", "tga.checkers.service")))
	assert.False(t, r.AppliesTo(domain.NewUnit("tga.checkers.web.C", "tga.checkers.web")))
	assert.True(t, r.Forbids(domain.NewUnit("tga.checkers.web.C", "tga.checkers.web")))
	assert.False(t, r.Forbids(domain.NewUnit("tga.checkers.webhook.H", "tga.checkers.webhook")))
}

func TestLayerRules(t *testing.T) {
	layers := []domain.Layer{
		{Name: "web", Packages: domain.MustParsePatternSet("..web..")},
		{Name: "service", Packages: domain.MustParsePatternSet("..service.."), AccessedBy: []string{"web"}},
	}

	rules, err := domain.LayerRules(layers)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	web := rules[0]
	assert.Equal(t, "layer web", web.Name)
	assert.Contains(t, web.Because, "may not be accessed")
	assert.True(t, web.AppliesTo(domain.NewUnit("a.service.S", "a.service")))
	assert.False(t, web.AppliesTo(domain.NewUnit("a.web.C", "a.web")))

	service := rules[1]
	assert.Equal(t, "layer service may only be accessed by web", service.Because)
	assert.False(t, service.AppliesTo(domain.NewUnit("a.web.C", "a.web")))
	assert.False(t, service.AppliesTo(domain.NewUnit("a.service.S", "a.service")))
	assert.True(t, service.AppliesTo(domain.NewUnit("a.repository.R", "a.repository")))
	assert.True(t, service.Forbids(domain.NewUnit("a.service.S", "a.service")))
}

func TestLayerRules_Errors(t *testing.T) {
	_, err := domain.LayerRules([]domain.Layer{
		{Name: "web", Packages: domain.MustParsePatternSet("..web.."), AccessedBy: []string{"ghost"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownLayer))

	_, err = domain.LayerRules([]domain.Layer{{Name: "web"}, {Name: "web"}})
	require.ErrorIs(t, err, domain.ErrDuplicateRule)
}

func TestReport(t *testing.T) {
	edge := domain.Edge{
		Source: domain.NewUnit("tga.checkers.service.CheckerService", "tga.checkers.service"),
		Target: domain.NewUnit("tga.checkers.web.CheckerController", "tga.checkers.web"),
	}
	passing := domain.RuleResult{Rule: domain.Rule{Name: "ok"}}
	failing := domain.RuleResult{
		Rule:       domain.Rule{Name: "no-web", Because: "Services should not depend on web"},
		Violations: []domain.Edge{edge},
	}

	t.Run("all passed", func(t *testing.T) {
		r := domain.Report{Results: []domain.RuleResult{passing}}
		assert.True(t, r.Passed())
		assert.Zero(t, r.ViolationCount())
		assert.NoError(t, r.Err())
	})

	t.Run("with violations", func(t *testing.T) {
		r := domain.Report{Results: []domain.RuleResult{passing, failing}}
		assert.False(t, r.Passed())
		assert.Equal(t, 1, r.ViolationCount())
		require.Len(t, r.Failed(), 1)

		err := r.Err()
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrRuleViolation))
		assert.True(t, strings.Contains(err.Error(), `rule "no-web" was violated by 1 edge(s)`))
	})

	t.Run("empty report passes", func(t *testing.T) {
		assert.NoError(t, domain.Report{}.Err())
	})
}
