package jvm

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/kotlin"
	"go.trai.ch/zerr"
)

// sourceFile is what one Java or Kotlin file contributes to the graph.
type sourceFile struct {
	Path    string
	Package string
	Classes []string
	Imports []importRef
	// Names holds every identifier spelled in the file.
	Names map[string]bool
	// Qualified holds dotted references such as tga.checkers.web.Controller.
	Qualified map[string]bool
	// SyntaxError locates the first unparsable region, if any.
	SyntaxError string
}

type importRef struct {
	Path     string
	Wildcard bool
}

var javaDeclarations = map[string]bool{
	"class_declaration":           true,
	"interface_declaration":       true,
	"enum_declaration":            true,
	"record_declaration":          true,
	"annotation_type_declaration": true,
}

func languageFor(path string) *sitter.Language {
	switch filepath.Ext(path) {
	case ".java":
		return java.GetLanguage()
	case ".kt":
		return kotlin.GetLanguage()
	default:
		return nil
	}
}

func parseFile(ctx context.Context, path string, content []byte) (*sourceFile, error) {
	lang := languageFor(path)
	if lang == nil {
		return nil, zerr.With(zerr.New("unsupported source file"), "path", path)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse source file"), "path", path)
	}
	defer tree.Close()

	f := &sourceFile{Path: path, Names: make(map[string]bool), Qualified: make(map[string]bool)}

	root := tree.RootNode()
	if root.HasError() {
		broken := syntaxErrors(root)
		for _, n := range broken {
			if inHeader(n) {
				return nil, zerr.With(zerr.With(zerr.New("package or import declaration has syntax errors"),
					"path", path), "position", position(n))
			}
		}
		if len(broken) > 0 {
			f.SyntaxError = position(broken[0])
		}
	}

	if filepath.Ext(path) == ".java" {
		f.readJava(root, content)
	} else {
		f.readKotlin(root, content)
	}
	f.collectNames(root, content)
	return f, nil
}

var headerTypes = map[string]bool{
	"package_declaration": true,
	"import_declaration":  true,
	"package_header":      true,
	"import_list":         true,
	"import_header":       true,
	"package":             true,
	"import":              true,
}

// syntaxErrors returns the ERROR and MISSING nodes of the tree in document order.
func syntaxErrors(n *sitter.Node) []*sitter.Node {
	if n.IsMissing() || n.Type() == "ERROR" {
		return []*sitter.Node{n}
	}
	if !n.HasError() {
		return nil
	}
	var out []*sitter.Node
	for i := range int(n.ChildCount()) {
		out = append(out, syntaxErrors(n.Child(i))...)
	}
	return out
}

// inHeader reports whether a broken node lies in, or swallowed, a package or import declaration.
func inHeader(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if headerTypes[p.Type()] {
			return true
		}
	}
	return containsHeader(n)
}

func containsHeader(n *sitter.Node) bool {
	if headerTypes[n.Type()] {
		return true
	}
	for i := range int(n.ChildCount()) {
		if containsHeader(n.Child(i)) {
			return true
		}
	}
	return false
}

func position(n *sitter.Node) string {
	p := n.StartPoint()
	return fmt.Sprintf("%d:%d", p.Row+1, p.Column+1)
}

func (f *sourceFile) readJava(root *sitter.Node, content []byte) {
	for i := range int(root.NamedChildCount()) {
		n := root.NamedChild(i)
		switch n.Type() {
		case "package_declaration":
			if id := firstChildOf(n, "scoped_identifier", "identifier"); id != nil {
				f.Package = id.Content(content)
			}
		case "import_declaration":
			f.Imports = append(f.Imports, javaImport(n, content))
		case "ERROR":
			f.Classes = append(f.Classes, recoveredClasses(n, content)...)
		default:
			if javaDeclarations[n.Type()] {
				if name := n.ChildByFieldName("name"); name != nil {
					f.Classes = append(f.Classes, name.Content(content))
				}
			}
		}
	}
}

var classKeywords = map[string]bool{
	"class":     true,
	"interface": true,
	"enum":      true,
	"record":    true,
	"object":    true,
}

// recoveredClasses finds type declarations inside an ERROR node: intact declaration nodes,
// or a class keyword directly followed by the type name.
func recoveredClasses(n *sitter.Node, content []byte) []string {
	var out []string
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		switch {
		case c.Type() == "ERROR":
			out = append(out, recoveredClasses(c, content)...)
		case javaDeclarations[c.Type()]:
			if name := c.ChildByFieldName("name"); name != nil {
				out = append(out, name.Content(content))
			}
		case c.Type() == "object_declaration":
			if name := firstChildOf(c, "type_identifier"); name != nil {
				out = append(out, name.Content(content))
			}
		case classKeywords[c.Type()] && i+1 < int(n.ChildCount()):
			next := n.Child(i + 1)
			if t := next.Type(); t == "identifier" || t == "type_identifier" || t == "simple_identifier" {
				out = append(out, next.Content(content))
			}
		}
	}
	return out
}

func javaImport(n *sitter.Node, content []byte) importRef {
	var ref importRef
	static := false
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		switch c.Type() {
		case "static":
			static = true
		case "asterisk":
			ref.Wildcard = true
		case "scoped_identifier", "identifier":
			ref.Path = c.Content(content)
		}
	}
	// A static import names a member. Its class is the enclosing path.
	if static && !ref.Wildcard {
		if idx := strings.LastIndex(ref.Path, "."); idx > 0 {
			ref.Path = ref.Path[:idx]
		}
	}
	return ref
}

func (f *sourceFile) readKotlin(root *sitter.Node, content []byte) {
	topLevelFunctions := false
	for i := range int(root.NamedChildCount()) {
		n := root.NamedChild(i)
		switch n.Type() {
		case "package_header":
			if id := firstChildOf(n, "identifier"); id != nil {
				f.Package = id.Content(content)
			}
		case "import_list":
			for j := range int(n.NamedChildCount()) {
				if h := n.NamedChild(j); h.Type() == "import_header" {
					f.Imports = append(f.Imports, kotlinImport(h, content))
				}
			}
		case "import_header":
			f.Imports = append(f.Imports, kotlinImport(n, content))
		case "class_declaration", "object_declaration":
			if name := firstChildOf(n, "type_identifier"); name != nil {
				f.Classes = append(f.Classes, name.Content(content))
			}
		case "function_declaration", "property_declaration":
			topLevelFunctions = true
		case "ERROR":
			f.Classes = append(f.Classes, recoveredClasses(n, content)...)
		}
	}

	// Top-level functions and properties compile into a <File>Kt facade class.
	if topLevelFunctions || len(f.Classes) == 0 {
		base := strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))
		f.Classes = append(f.Classes, upperFirst(base)+"Kt")
	}
}

func kotlinImport(n *sitter.Node, content []byte) importRef {
	var ref importRef
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		switch c.Type() {
		case "identifier":
			ref.Path = c.Content(content)
		case "wildcard_import":
			ref.Wildcard = true
		}
	}
	if strings.HasSuffix(ref.Path, ".*") {
		ref.Path = strings.TrimSuffix(ref.Path, ".*")
		ref.Wildcard = true
	}
	return ref
}

var qualifiedName = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{N}_$]*(\.[\p{L}_$][\p{L}\p{N}_$]*)+$`)

// collectNames records the simple names and the dotted references spelled outside the file header.
func (f *sourceFile) collectNames(n *sitter.Node, content []byte) {
	switch n.Type() {
	case "identifier", "type_identifier", "simple_identifier":
		if n.ChildCount() == 0 {
			f.Names[n.Content(content)] = true
			return
		}
	case "package_declaration", "import_declaration", "package_header", "import_list", "import_header":
		return
	case "scoped_type_identifier", "scoped_identifier", "field_access":
		f.addQualified(strings.Join(strings.Fields(n.Content(content)), ""))
	case "user_type":
		f.addQualified(kotlinUserType(n, content))
	case "navigation_expression":
		f.addQualified(kotlinNavigation(n, content))
	}
	for i := range int(n.NamedChildCount()) {
		f.collectNames(n.NamedChild(i), content)
	}
}

func (f *sourceFile) addQualified(name string) {
	if qualifiedName.MatchString(name) {
		f.Qualified[name] = true
	}
}

// kotlinUserType joins the segments of a user type, dropping type arguments.
func kotlinUserType(n *sitter.Node, content []byte) string {
	var parts []string
	for i := range int(n.NamedChildCount()) {
		if c := n.NamedChild(i); c.Type() == "type_identifier" {
			parts = append(parts, c.Content(content))
		}
	}
	return strings.Join(parts, ".")
}

// kotlinNavigation flattens a chain of property accesses such as a.b.C. Other chains yield "".
func kotlinNavigation(n *sitter.Node, content []byte) string {
	switch n.Type() {
	case "simple_identifier":
		return n.Content(content)
	case "navigation_expression":
		if n.NamedChildCount() != 2 {
			return ""
		}
		left := kotlinNavigation(n.NamedChild(0), content)
		suffix := n.NamedChild(1)
		if left == "" || suffix.Type() != "navigation_suffix" {
			return ""
		}
		id := firstChildOf(suffix, "simple_identifier")
		if id == nil {
			return ""
		}
		return left + "." + id.Content(content)
	default:
		return ""
	}
}

func firstChildOf(n *sitter.Node, types ...string) *sitter.Node {
	for i := range int(n.NamedChildCount()) {
		c := n.NamedChild(i)
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
