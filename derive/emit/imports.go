package emit

import (
	"path"
	"sort"
	"strconv"
	"strings"
)

// importSet maps the names generated code qualifies with to import paths.
// Every path is imported under one name and every name refers to one path.
type importSet struct {
	byName map[string]string
	byPath map[string]string
	blank  map[string]bool
}

func newImportSet() *importSet {
	return &importSet{
		byName: make(map[string]string),
		byPath: make(map[string]string),
		blank:  make(map[string]bool),
	}
}

// add imports importPath as name. The caller guarantees the name is free.
func (s *importSet) add(name, importPath string) {
	s.byName[name] = importPath
	s.byPath[importPath] = name
}

// claim returns the name importPath is imported under, adding it as name
// when it is free, else as name2, name3, ... skipping anything in avoid.
func (s *importSet) claim(name, importPath string, avoid map[string]bool) string {
	if prev, ok := s.byPath[importPath]; ok {
		return prev
	}
	alias := name
	for n := 2; s.taken(alias) || avoid[alias]; n++ {
		alias = name + strconv.Itoa(n)
	}
	s.add(alias, importPath)
	return alias
}

func (s *importSet) taken(name string) bool {
	_, ok := s.byName[name]
	return ok
}

func (s *importSet) addBlank(importPath string) {
	s.blank[importPath] = true
}

// write emits the import block: standard library first, then the rest.
func (s *importSet) write(e *Emitter) {
	var std, other []importSpec
	for name, p := range s.byName {
		sp := importSpec{path: p}
		if name != defaultName(p) {
			sp.name = name
		}
		if isStd(p) {
			std = append(std, sp)
		} else {
			other = append(other, sp)
		}
	}
	for p := range s.blank {
		other = append(other, importSpec{name: "_", path: p})
	}
	byPath := func(list []importSpec) {
		sort.Slice(list, func(i, j int) bool { return list[i].path < list[j].path })
	}
	byPath(std)
	byPath(other)

	e.Line("import (")
	e.Indent()
	for _, sp := range std {
		e.Line("%s", sp.line())
	}
	if len(std) > 0 && len(other) > 0 {
		e.Blank()
	}
	for _, sp := range other {
		e.Line("%s", sp.line())
	}
	e.Dedent()
	e.Line(")")
}

type importSpec struct{ name, path string }

func (sp importSpec) line() string {
	if sp.name == "" {
		return `"` + sp.path + `"`
	}
	return sp.name + ` "` + sp.path + `"`
}

// defaultName is the name an unaliased import of p binds, assuming the
// package clause matches the last path element.
func defaultName(p string) string {
	return path.Base(p)
}

func isStd(p string) bool {
	first, _, _ := strings.Cut(p, "/")
	return !strings.Contains(first, ".")
}
