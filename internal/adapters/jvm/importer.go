// Package jvm imports a class-level dependency graph from Java and Kotlin sources.
package jvm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"unicode"

	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.GraphImporter = (*Importer)(nil)

// buildDirs hold compiler output and are never parsed.
var buildDirs = []string{"build", "target", "out", ".gradle", ".idea"}

// Importer parses Java and Kotlin sources with tree-sitter.
type Importer struct {
	walker *fs.Walker
	logger ports.Logger
}

// NewImporter creates a new JVM importer.
func NewImporter(walker *fs.Walker, logger ports.Logger) *Importer {
	return &Importer{walker: walker, logger: logger}
}

// Import parses every source below src.Root and links classes through their imports.
// Code the grammar cannot parse is skipped with a warning unless it breaks a package or import declaration.
func (i *Importer) Import(ctx context.Context, src domain.Source) (*domain.Graph, error) {
	paths, err := i.sourcePaths(src)
	if err != nil {
		return nil, errors.Join(domain.ErrImportFailed, zerr.With(err, "root", src.Root))
	}

	files := make([]*sourceFile, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for idx, path := range paths {
		g.Go(func() error {
			// #nosec G304 -- path comes from walking the configured source root
			content, err := os.ReadFile(path)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to read source file"), "path", path)
			}
			f, err := parseFile(gctx, path, content)
			if err != nil {
				return err
			}
			files[idx] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Join(domain.ErrImportFailed, zerr.With(err, "root", src.Root))
	}

	for _, f := range files {
		if f.SyntaxError != "" {
			i.logger.Warn("skipping unparsable code in " + f.Path + " at " + f.SyntaxError)
		}
	}

	files = slices.DeleteFunc(files, func(f *sourceFile) bool {
		return !selected(f.Package, src.Packages)
	})

	graph, err := link(files)
	if err != nil {
		return nil, errors.Join(domain.ErrImportFailed, zerr.With(err, "root", src.Root))
	}
	return graph, nil
}

func (i *Importer) sourcePaths(src domain.Source) ([]string, error) {
	var paths []string
	for path, err := range i.walker.WalkExtensions(src.Root, domain.SourceJVM.Extensions(), buildDirs) {
		if err != nil {
			return nil, err
		}
		if !src.IncludeTests && isTestSource(src.Root, path) {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// isTestSource recognizes the src/test source set and *Test/*Tests classes.
func isTestSource(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "src" && strings.HasPrefix(parts[i+1], "test") {
			return true
		}
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(base, "Test") || strings.HasSuffix(base, "Tests")
}

// selected reports whether pkg lies below one of the prefixes. No prefixes selects everything.
func selected(pkg string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if pkg == p || strings.HasPrefix(pkg, p+".") {
			return true
		}
	}
	return false
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func link(files []*sourceFile) (*domain.Graph, error) {
	b := domain.NewGraphBuilder()
	byPackage := make(map[string][]string)
	internal := make(map[string]domain.Unit)

	for _, f := range files {
		for _, class := range f.Classes {
			u := domain.NewUnit(qualify(f.Package, class), f.Package)
			if err := b.AddUnit(u); err != nil {
				return nil, err
			}
			internal[u.Name.String()] = u
			byPackage[f.Package] = append(byPackage[f.Package], class)
		}
	}

	for _, f := range files {
		targets := make(map[string]domain.Unit)

		for _, class := range byPackage[f.Package] {
			if f.Names[class] {
				name := qualify(f.Package, class)
				targets[name] = internal[name]
			}
		}

		for _, imp := range f.Imports {
			if classes, ok := byPackage[imp.Path]; ok && imp.Wildcard {
				for _, class := range classes {
					if f.Names[class] {
						name := qualify(imp.Path, class)
						targets[name] = internal[name]
					}
				}
				continue
			}

			name := imp.Path
			if _, ok := internal[name]; !ok {
				name = classPrefix(imp.Path)
			}
			if u, ok := internal[name]; ok {
				targets[name] = u
				continue
			}
			u := externalUnit(imp)
			targets[u.Name.String()] = u
		}

		for ref := range f.Qualified {
			if u, ok := resolveQualified(ref, internal); ok {
				targets[u.Name.String()] = u
			}
		}

		for _, class := range f.Classes {
			source := qualify(f.Package, class)
			for name, target := range targets {
				if err := b.AddUnit(target); err != nil {
					return nil, err
				}
				if err := b.AddEdge(source, name); err != nil {
					return nil, err
				}
			}
		}
	}
	return b.Build(), nil
}

// resolveQualified finds the internal class a dotted reference starts with.
// a.b.Outer.Inner.field resolves to a.b.Outer when that class is part of the source set.
func resolveQualified(ref string, internal map[string]domain.Unit) (domain.Unit, bool) {
	for strings.Contains(ref, ".") {
		if u, ok := internal[ref]; ok {
			return u, true
		}
		ref = ref[:strings.LastIndex(ref, ".")]
	}
	return domain.Unit{}, false
}

// externalUnit names an imported class outside the source set. Nested classes collapse into their
// top-level class and package wildcards into a single unit per package.
func externalUnit(imp importRef) domain.Unit {
	if cls := classPrefix(imp.Path); cls != "" {
		return domain.NewExternalUnit(cls, packageOf(cls))
	}
	if imp.Wildcard {
		return domain.NewExternalUnit(imp.Path+".*", imp.Path)
	}
	return domain.NewExternalUnit(imp.Path, packageOf(imp.Path))
}

// classPrefix cuts a qualified name after its first capitalized segment.
func classPrefix(qualified string) string {
	segments := strings.Split(qualified, ".")
	for i, s := range segments {
		if s != "" && unicode.IsUpper(rune(s[0])) {
			return strings.Join(segments[:i+1], ".")
		}
	}
	return ""
}

func packageOf(class string) string {
	if idx := strings.LastIndex(class, "."); idx >= 0 {
		return class[:idx]
	}
	return ""
}
