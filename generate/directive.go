package generate

import (
	"go/ast"
	"go/token"
	"go/types"
	"io"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/pflag"

	"github.com/teranos/arbgen/derive"
	"github.com/teranos/arbgen/errors"
)

type directiveFlags struct {
	noTest   bool
	noMethod bool
}

// target is one declaration to derive.
type target struct {
	decl  derive.Decl
	flags directiveFlags
}

// discover finds the declarations marked with the directive, or the ones
// named by opts.Types. Malformed directives and unknown type names become
// diagnostics; the remaining targets are still returned.
func discover(pkg *Package, opts Options) ([]target, []Diagnostic) {
	if len(opts.Types) > 0 {
		return byName(pkg, opts.Types)
	}

	var targets []target
	var diags []Diagnostic
	for _, file := range pkg.Files {
		for _, d := range file.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, s := range gd.Specs {
				spec := s.(*ast.TypeSpec)
				doc := spec.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				c, args, found := findDirective(doc, opts.Directive)
				if !found {
					continue
				}

				flags, err := parseDirective(opts.Directive, args)
				if err != nil {
					diags = append(diags, Diagnostic{Type: spec.Name.Name, Pos: pkg.Fset.Position(c.Pos()), Err: err})
					continue
				}
				obj, ok := pkg.Info.Defs[spec.Name].(*types.TypeName)
				if !ok {
					continue
				}
				targets = append(targets, target{
					decl:  derive.Decl{Obj: obj, Spec: spec, Fset: pkg.Fset},
					flags: flags,
				})
			}
		}
	}
	sortTargets(targets, pkg.Fset)
	return targets, diags
}

func byName(pkg *Package, names []string) ([]target, []Diagnostic) {
	specs := make(map[string]*ast.TypeSpec)
	for _, file := range pkg.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			if spec, ok := n.(*ast.TypeSpec); ok {
				specs[spec.Name.Name] = spec
			}
			_, isFunc := n.(*ast.FuncDecl)
			return !isFunc
		})
	}

	var targets []target
	var diags []Diagnostic
	for _, name := range names {
		obj, ok := pkg.Types.Scope().Lookup(name).(*types.TypeName)
		if !ok {
			diags = append(diags, Diagnostic{
				Type: name,
				Err:  errors.NewNotFoundError("type %s not found in %s", name, pkg.Path),
			})
			continue
		}
		targets = append(targets, target{decl: derive.Decl{Obj: obj, Spec: specs[name], Fset: pkg.Fset}})
	}
	sortTargets(targets, pkg.Fset)
	return targets, diags
}

// sortTargets orders by file then offset so output is stable.
func sortTargets(targets []target, fset *token.FileSet) {
	sort.SliceStable(targets, func(i, j int) bool {
		a := fset.Position(targets[i].decl.Obj.Pos())
		b := fset.Position(targets[j].decl.Obj.Pos())
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		return a.Offset < b.Offset
	})
}

// findDirective returns the directive comment and its argument text.
func findDirective(doc *ast.CommentGroup, directive string) (*ast.Comment, string, bool) {
	if doc == nil {
		return nil, "", false
	}
	marker := "//" + directive
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, marker)
		if !ok {
			continue
		}
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		return c, strings.TrimSpace(rest), true
	}
	return nil, "", false
}

// parseDirective accepts -notest and -nomethod, with one or two dashes.
func parseDirective(directive, args string) (directiveFlags, error) {
	var flags directiveFlags
	words, err := shellquote.Split(args)
	if err != nil {
		return flags, errors.Wrap(errors.ErrInvalidInput, errors.Wrapf(err, "//%s arguments", directive).Error())
	}
	for i, w := range words {
		if len(w) > 2 && w[0] == '-' && w[1] != '-' {
			words[i] = "-" + w
		}
	}

	fs := pflag.NewFlagSet(directive, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&flags.noTest, "notest", false, "do not emit a smoke test")
	fs.BoolVar(&flags.noMethod, "nomethod", false, "do not emit an Arbitrary method")
	if err := fs.Parse(words); err != nil {
		return flags, errors.WithHint(
			errors.NewInvalidInputError("//%s: %v", directive, err),
			"supported flags are -notest and -nomethod")
	}
	if fs.NArg() > 0 {
		return flags, errors.NewInvalidInputError("//%s: unexpected argument %q", directive, fs.Arg(0))
	}
	return flags, nil
}
