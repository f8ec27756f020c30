// Package golang imports the dependency graph of Go packages through the go toolchain.
package golang

import (
	"context"
	"errors"
	"go/ast"
	"go/types"
	"strings"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/tools/go/packages"
)

var _ ports.GraphImporter = (*Importer)(nil)

const (
	packageMode = packages.NeedName | packages.NeedImports | packages.NeedFiles
	declMode    = packageMode | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax
)

// Importer loads Go packages and turns their imports into a graph.
type Importer struct{}

// NewImporter creates a new Go importer.
func NewImporter() *Importer {
	return &Importer{}
}

// Import loads the packages matched by src.Packages below src.Root.
func (i *Importer) Import(ctx context.Context, src domain.Source) (*domain.Graph, error) {
	mode := packageMode
	if src.Granularity == domain.GranularityDeclaration {
		mode = declMode
	}

	patterns := src.Packages
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    mode,
		Dir:     src.Root,
		Tests:   src.IncludeTests,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, importFailed(err, "failed to load go packages", src.Root)
	}

	loaded, err := selectPackages(pkgs)
	if err != nil {
		return nil, importFailed(err, "go package has errors", src.Root)
	}

	b := domain.NewGraphBuilder()
	if src.Granularity == domain.GranularityDeclaration {
		err = addDeclarations(b, loaded)
	} else {
		err = addPackages(b, loaded)
	}
	if err != nil {
		return nil, importFailed(err, "failed to build go graph", src.Root)
	}
	return b.Build(), nil
}

func importFailed(err error, msg, root string) error {
	return errors.Join(domain.ErrImportFailed, zerr.With(zerr.Wrap(err, msg), "root", root))
}

// selectPackages groups the loaded packages by unit path. Test variants carry a superset of
// the files, so the variant with the most files wins. External test packages (package p_test)
// are folded into p, so patterns written for p also cover its tests.
func selectPackages(pkgs []*packages.Package) (map[string][]*packages.Package, error) {
	primary := make(map[string]*packages.Package, len(pkgs))
	external := make(map[string]*packages.Package)
	for _, p := range pkgs {
		if strings.HasSuffix(p.PkgPath, ".test") {
			continue
		}
		if len(p.Errors) > 0 {
			return nil, zerr.With(errors.New(p.Errors[0].Error()), "package", p.PkgPath)
		}
		if base, ok := externalTestBase(p); ok {
			if prev, seen := external[base]; !seen || len(prev.GoFiles) < len(p.GoFiles) {
				external[base] = p
			}
			continue
		}
		if prev, ok := primary[p.PkgPath]; ok && len(prev.GoFiles) >= len(p.GoFiles) {
			continue
		}
		primary[p.PkgPath] = p
	}

	out := make(map[string][]*packages.Package, len(primary))
	for path, p := range primary {
		out[path] = append(out[path], p)
	}
	for base, p := range external {
		out[base] = append(out[base], p)
	}
	return out, nil
}

// externalTestBase returns the import path p tests when p is an external test package.
func externalTestBase(p *packages.Package) (string, bool) {
	if !strings.HasSuffix(p.Name, "_test") {
		return "", false
	}
	base, ok := strings.CutSuffix(p.PkgPath, "_test")
	return base, ok && base != ""
}

func addPackages(b *domain.GraphBuilder, loaded map[string][]*packages.Package) error {
	for path := range loaded {
		if err := b.AddUnit(domain.NewUnit(path, path)); err != nil {
			return err
		}
	}

	for path, variants := range loaded {
		for _, p := range variants {
			for imp := range p.Imports {
				if _, ok := loaded[imp]; !ok {
					if err := b.AddUnit(domain.NewExternalUnit(imp, imp)); err != nil {
						return err
					}
				}
				if err := b.AddEdge(path, imp); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func addDeclarations(b *domain.GraphBuilder, loaded map[string][]*packages.Package) error {
	for path, variants := range loaded {
		for _, p := range variants {
			for _, file := range p.Syntax {
				for _, decl := range file.Decls {
					for _, owner := range declOwners(decl) {
						source := path + "." + owner
						if err := b.AddUnit(domain.NewUnit(source, path)); err != nil {
							return err
						}
						if err := addReferences(b, loaded, p.TypesInfo, source, decl); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}

// declOwners names the units a top-level declaration belongs to. Methods belong to their receiver type.
func declOwners(decl ast.Decl) []string {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Recv != nil && len(d.Recv.List) > 0 {
			if name := receiverName(d.Recv.List[0].Type); name != "" {
				return []string{name}
			}
		}
		return []string{d.Name.Name}
	case *ast.GenDecl:
		var names []string
		for _, spec := range d.Specs {
			switch s := spec.(type) {
			case *ast.TypeSpec:
				names = append(names, s.Name.Name)
			case *ast.ValueSpec:
				for _, n := range s.Names {
					if n.Name != "_" {
						names = append(names, n.Name)
					}
				}
			}
		}
		return names
	}
	return nil
}

func receiverName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

func addReferences(
	b *domain.GraphBuilder,
	loaded map[string][]*packages.Package,
	info *types.Info,
	source string,
	decl ast.Decl,
) error {
	if info == nil {
		return nil
	}

	var err error
	ast.Inspect(decl, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		ident, ok := n.(*ast.Ident)
		if !ok {
			return true
		}
		target, pkg, ok := referenceTarget(info.Uses[ident])
		if !ok {
			return true
		}

		unit := domain.NewExternalUnit(pkg, pkg)
		if _, internal := loaded[pkg]; internal {
			unit = domain.NewUnit(pkg+"."+target, pkg)
		}
		if err = b.AddUnit(unit); err != nil {
			return false
		}
		err = b.AddEdge(source, unit.Name.String())
		return err == nil
	})
	return err
}

// referenceTarget resolves a used object to its declaring top-level name and package path.
func referenceTarget(obj types.Object) (string, string, bool) {
	if obj == nil || obj.Pkg() == nil {
		return "", "", false
	}
	pkg := obj.Pkg().Path()

	switch o := obj.(type) {
	case *types.PkgName:
		return "", "", false
	case *types.Var:
		if o.IsField() {
			return "", "", false
		}
	case *types.Func:
		if sig, ok := o.Type().(*types.Signature); ok && sig.Recv() != nil {
			if name := namedTypeName(sig.Recv().Type()); name != "" {
				return name, pkg, true
			}
			return "", "", false
		}
	}

	if obj.Parent() != obj.Pkg().Scope() {
		return "", "", false
	}
	return obj.Name(), pkg, true
}

func namedTypeName(t types.Type) string {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}
	if named, ok := t.(*types.Named); ok {
		return named.Obj().Name()
	}
	return ""
}
