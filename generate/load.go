package generate

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/tools/go/packages"

	"github.com/teranos/arbgen/errors"
	"github.com/teranos/arbgen/logger"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
	packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports

// Package is a type-checked package ready for derivation.
type Package struct {
	Path string
	Name string
	Dir  string
	Fset *token.FileSet
	// Files excludes arbgen's own output.
	Files []*ast.File
	Types *types.Package
	Info  *types.Info
}

// Load type-checks the packages matching patterns. Files arbgen generated
// are parsed package-clause-only, so stale or broken output never prevents
// loading, and compile errors go list reports for them are tolerated. Type
// errors elsewhere are logged and tolerated; other list and parse errors are
// not.
func Load(ctx context.Context, patterns []string, opts Options) ([]*Package, error) {
	log := logger.ComponentLogger("generate.load")
	start := time.Now()

	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     opts.Dir,
		ParseFile: func(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
			if opts.owned(filepath.Base(filename)) {
				return parser.ParseFile(fset, filename, src, parser.PackageClauseOnly)
			}
			return parser.ParseFile(fset, filename, src, parser.AllErrors|parser.ParseComments)
		},
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %v", patterns)
	}
	if len(pkgs) == 0 {
		return nil, errors.NewNotFoundError("no packages match %v", patterns)
	}

	out := make([]*Package, 0, len(pkgs))
	for _, p := range pkgs {
		for _, e := range p.Errors {
			if e.Kind != packages.TypeError && !inOwnedFile(e, opts) {
				return nil, errors.Wrapf(e, "package %s", p.PkgPath)
			}
			log.Debugw("Tolerating load error", logger.FieldPackage, p.PkgPath, logger.FieldError, e.Msg)
		}
		if len(p.CompiledGoFiles) == 0 || p.Types == nil {
			continue
		}

		pkg := &Package{
			Path:  p.PkgPath,
			Name:  p.Name,
			Dir:   filepath.Dir(p.CompiledGoFiles[0]),
			Fset:  p.Fset,
			Types: p.Types,
			Info:  p.TypesInfo,
		}
		for _, f := range p.Syntax {
			if !opts.owned(filepath.Base(p.Fset.Position(f.Package).Filename)) {
				pkg.Files = append(pkg.Files, f)
			}
		}
		out = append(out, pkg)
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputLoader) {
		log.Debugw("Loaded packages",
			logger.FieldPattern, patterns,
			logger.FieldCount, len(out),
			logger.FieldDurationMS, time.Since(start).Milliseconds())
	}
	return out, nil
}

// compilerLine matches one "./arbitrary_gen.go:3:17: msg" line of compiler
// output.
var compilerLine = regexp.MustCompile(`^(.+?\.go):\d+(?::\d+)?: `)

// inOwnedFile reports whether e points only into arbgen's own output, such
// as an import the generated file needs but the module cannot resolve yet.
// go list reports a stale output file that no longer compiles without a
// position; the compiler's lines are in Msg instead.
func inOwnedFile(e packages.Error, opts Options) bool {
	if e.Pos != "" {
		return opts.owned(filepath.Base(posFile(e.Pos)))
	}
	if e.Kind != packages.ListError {
		return false
	}
	owned := false
	for _, line := range strings.Split(e.Msg, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.TrimSpace(line) == "",
			strings.HasPrefix(line, "#"),
			strings.HasPrefix(line, "\t"),
			line == "too many errors":
			continue
		}
		m := compilerLine.FindStringSubmatch(line)
		if m == nil || !opts.owned(filepath.Base(m[1])) {
			return false
		}
		owned = true
	}
	return owned
}

func posFile(pos string) string {
	if m := compilerLine.FindStringSubmatch(pos + ": "); m != nil {
		return m[1]
	}
	file, _, _ := strings.Cut(pos, ":")
	return file
}
