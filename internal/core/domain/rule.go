package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// Rule forbids units matching Subjects (and not Except) from depending on units matching Forbidden.
type Rule struct {
	Name      string
	Because   string
	Subjects  PatternSet
	Except    PatternSet
	Forbidden PatternSet
}

// AppliesTo reports whether u is a subject of the rule.
func (r Rule) AppliesTo(u Unit) bool {
	return r.Subjects.Matches(u.Package) && !r.Except.Matches(u.Package)
}

// Forbids reports whether a dependency on u is forbidden by the rule.
func (r Rule) Forbids(u Unit) bool {
	return r.Forbidden.Matches(u.Package)
}

// Layer groups packages that only the named layers may depend on.
type Layer struct {
	Name       string
	Packages   PatternSet
	AccessedBy []string
}

// everything matches every package path, including the root.
var everything = MustParsePattern("..")

// LayerRules expands layers into rules. A layer with no accessors may not be used by any other package.
func LayerRules(layers []Layer) ([]Rule, error) {
	byName := make(map[string]Layer, len(layers))
	for _, l := range layers {
		if _, dup := byName[l.Name]; dup {
			return nil, zerr.With(zerr.Wrap(ErrDuplicateRule, "layer declared twice"), "layer", l.Name)
		}
		byName[l.Name] = l
	}

	rules := make([]Rule, 0, len(layers))
	for _, l := range layers {
		except := append(PatternSet{}, l.Packages...)
		for _, name := range l.AccessedBy {
			accessor, ok := byName[name]
			if !ok {
				err := zerr.With(zerr.Wrap(ErrUnknownLayer, "accessedBy names an undeclared layer"), "layer", l.Name)
				return nil, zerr.With(err, "accessed_by", name)
			}
			except = append(except, accessor.Packages...)
		}

		rules = append(rules, Rule{
			Name:      "layer " + l.Name,
			Because:   layerReason(l),
			Subjects:  PatternSet{everything},
			Except:    except,
			Forbidden: l.Packages,
		})
	}
	return rules, nil
}

func layerReason(l Layer) string {
	if len(l.AccessedBy) == 0 {
		return fmt.Sprintf("layer %s may not be accessed by any other layer", l.Name)
	}
	return fmt.Sprintf("layer %s may only be accessed by %s", l.Name, strings.Join(l.AccessedBy, ", "))
}
