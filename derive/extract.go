package derive

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/arbgen/errors"
)

// Decl is one type declaration to derive for. Spec is optional; without it
// diagnostics anchor at the type name.
type Decl struct {
	Obj  *types.TypeName
	Spec *ast.TypeSpec
	Fset *token.FileSet
}

type extractor struct {
	decl    Decl
	pkg     *types.Package
	imports map[string]string // path -> qualifier
	// taken are identifiers a qualifier may not reuse.
	taken map[string]bool
}

// Extract builds the schema for decl. Declarations arbgen cannot generate
// (aliases, func and chan types, unsafe.Pointer, open or constraint
// interfaces) yield an Unsupported schema carrying the diagnostic; the error
// return is reserved for malformed input.
func Extract(decl Decl) (*TypeSchema, error) {
	if decl.Obj == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "declaration has no type object")
	}
	x := &extractor{
		decl:    decl,
		pkg:     decl.Obj.Pkg(),
		imports: make(map[string]string),
		taken:   map[string]bool{runtimeName: true},
	}

	schema := &TypeSchema{
		Name:     decl.Obj.Name(),
		Pos:      x.position(decl.Obj.Pos()),
		Anchor:   x.anchor(),
		Reserved: make(map[string]bool),
	}
	if decl.Spec != nil {
		schema.Pos = x.position(decl.Spec.Name.Pos())
	}
	if x.pkg != nil {
		for _, name := range x.pkg.Scope().Names() {
			schema.Reserved[name] = true
		}
	}

	if decl.Obj.IsAlias() {
		return x.unsupported(schema, "type aliases", "declare a defined type (drop the =)"), nil
	}
	named, ok := decl.Obj.Type().(*types.Named)
	if !ok {
		return x.unsupported(schema, "non-defined types", ""), nil
	}
	for name := range schema.Reserved {
		x.taken[name] = true
	}
	for i := 0; i < named.TypeParams().Len(); i++ {
		name := named.TypeParams().At(i).Obj().Name()
		schema.Reserved[name] = true
		x.taken[name] = true
	}
	schema.Generics = x.generics(named.TypeParams())

	switch u := named.Underlying().(type) {
	case *types.Interface:
		x.sum(schema, named, u)
	case *types.Signature:
		x.unsupported(schema, "func types", "")
	case *types.Chan:
		x.unsupported(schema, "channel types", "")
	default:
		if isUnsafePointer(u) {
			x.unsupported(schema, "unsafe.Pointer types", "")
			break
		}
		schema.Kind = Product
		v := Variant{Name: schema.Name, Ctor: schema.Name + argList(schema.Generics)}
		x.layout(&v, u)
		schema.Variants = []Variant{v}
		schema.Method = x.canCarryMethod(named)
	}

	if schema.Kind != Unsupported {
		schema.Imports = x.importList()
	}
	return schema, nil
}

func (x *extractor) unsupported(schema *TypeSchema, what, hint string) *TypeSchema {
	schema.Kind = Unsupported
	schema.Variants = nil
	schema.Err = unsupported(x.anchor(), what, hint)
	return schema
}

// sum resolves a sealed interface into its implementing types.
func (x *extractor) sum(schema *TypeSchema, named *types.Named, iface *types.Interface) {
	if !iface.IsMethodSet() {
		x.unsupported(schema, "constraint interfaces", "")
		return
	}
	if !sealed(iface) {
		x.unsupported(schema, "open interfaces",
			"seal the interface with an unexported method so its variants are known")
		return
	}
	schema.Kind = Sum

	scope := x.pkg.Scope()
	var candidates []*types.TypeName
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || obj == named.Obj() || obj.IsAlias() {
			continue
		}
		candidates = append(candidates, obj)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Pos() < candidates[j].Pos()
	})

	for _, obj := range candidates {
		v, ok := x.variant(obj, named, iface)
		if !ok {
			continue
		}
		if v.Err != nil {
			schema.Kind = Unsupported
			schema.Variants = nil
			schema.Err = v.Err
			return
		}
		schema.Variants = append(schema.Variants, v.Variant)
	}
}

type candidate struct {
	Variant
	Err *SynthesisError
}

// variant reports whether obj implements the sum and how to build it.
// Generic candidates are instantiated with the sum's own type parameters,
// positionally.
func (x *extractor) variant(obj *types.TypeName, sum *types.Named, iface *types.Interface) (candidate, bool) {
	vn, ok := obj.Type().(*types.Named)
	if !ok {
		return candidate{}, false
	}
	if _, isIface := vn.Underlying().(*types.Interface); isIface {
		return candidate{}, false
	}

	var vt types.Type = vn
	ctor := obj.Name()
	if tps := vn.TypeParams(); tps.Len() > 0 {
		own := sum.TypeParams()
		if own.Len() != tps.Len() {
			return candidate{}, false
		}
		targs := make([]types.Type, own.Len())
		for i := range targs {
			targs[i] = own.At(i)
		}
		inst, err := types.Instantiate(nil, vn, targs, true)
		if err != nil {
			return candidate{}, false
		}
		vt = inst
		ctor += argList(x.generics(own))
	}

	c := candidate{Variant: Variant{Name: obj.Name(), Ctor: ctor}}
	switch {
	case types.Implements(vt, iface):
	case types.Implements(types.NewPointer(vt), iface):
		c.Addr = true
	default:
		return candidate{}, false
	}

	pos := x.position(obj.Pos())
	switch u := vt.Underlying().(type) {
	case *types.Signature:
		c.Err = unsupported(pos, "func-typed variants", "")
	case *types.Chan:
		c.Err = unsupported(pos, "channel-typed variants", "")
	default:
		if isUnsafePointer(u) {
			c.Err = unsupported(pos, "unsafe.Pointer variants", "")
			break
		}
		x.layout(&c.Variant, u)
	}
	if c.Err != nil {
		c.Err.Message = "variant " + obj.Name() + ": " + c.Err.Message
	}
	return c, true
}

// layout fills v's shape and fields from the underlying type.
func (x *extractor) layout(v *Variant, u types.Type) {
	st, ok := u.(*types.Struct)
	if !ok {
		v.Shape = ShapeUnnamed
		v.Fields = []Field{x.field("", u)}
		return
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Name() == "_" {
			continue
		}
		// Unexported fields of a struct declared elsewhere cannot be keyed.
		if !f.Exported() && f.Pkg() != x.pkg {
			continue
		}
		v.Fields = append(v.Fields, x.field(f.Name(), f.Type()))
	}
	if len(v.Fields) == 0 {
		v.Shape = ShapeUnit
	} else {
		v.Shape = ShapeNamed
	}
}

func (x *extractor) field(name string, t types.Type) Field {
	f := Field{Name: name, Type: x.typeString(t)}
	if n, ok := types.Unalias(t).(*types.Named); ok && n.Obj().Pkg() == x.pkg && n.TypeArgs().Len() > 0 {
		args := make([]string, n.TypeArgs().Len())
		for i := range args {
			args[i] = x.typeString(n.TypeArgs().At(i))
		}
		f.Local = n.Obj().Name()
		f.Args = "[" + strings.Join(args, ", ") + "]"
	}
	return f
}

func (x *extractor) generics(list *types.TypeParamList) []GenericParam {
	if list.Len() == 0 {
		return nil
	}
	params := make([]GenericParam, list.Len())
	for i := range params {
		tp := list.At(i)
		params[i] = GenericParam{Name: tp.Obj().Name(), Bounds: x.bounds(tp.Constraint())}
	}
	return params
}

func (x *extractor) bounds(c types.Type) []string {
	if iface, ok := types.Unalias(c).(*types.Interface); ok && iface.Empty() {
		return nil
	}
	return []string{x.typeString(c)}
}

// canCarryMethod reports whether a generated Arbitrary method may be
// declared on named.
func (x *extractor) canCarryMethod(named *types.Named) bool {
	if named.TypeParams().Len() > 0 {
		return false
	}
	if _, isPtr := named.Underlying().(*types.Pointer); isPtr {
		return false
	}
	obj, _, _ := types.LookupFieldOrMethod(named, true, x.pkg, "Arbitrary")
	return obj == nil
}

func (x *extractor) typeString(t types.Type) string {
	return types.TypeString(t, x.qualifier)
}

// qualifier names p in rendered types. Packages whose name is taken by the
// declaring package, a type parameter or another import are aliased name2,
// name3, ...
func (x *extractor) qualifier(p *types.Package) string {
	if p == x.pkg {
		return ""
	}
	if name, ok := x.imports[p.Path()]; ok {
		return name
	}
	name := p.Name()
	if p.Path() != RuntimePath {
		for i := 2; x.taken[name]; i++ {
			name = p.Name() + strconv.Itoa(i)
		}
	}
	x.imports[p.Path()] = name
	x.taken[name] = true
	return name
}

func (x *extractor) importList() []Import {
	if len(x.imports) == 0 {
		return nil
	}
	list := make([]Import, 0, len(x.imports))
	for path, name := range x.imports {
		list = append(list, Import{Name: name, Path: path})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	return list
}

// anchor is the declaration's distinguishing token: the struct, interface,
// func or chan keyword, the = of an alias, else the type name.
func (x *extractor) anchor() token.Position {
	spec := x.decl.Spec
	if spec == nil {
		return x.position(x.decl.Obj.Pos())
	}
	if spec.Assign.IsValid() {
		return x.position(spec.Assign)
	}
	switch t := spec.Type.(type) {
	case *ast.StructType:
		return x.position(t.Struct)
	case *ast.InterfaceType:
		return x.position(t.Interface)
	case *ast.FuncType:
		if t.Func.IsValid() {
			return x.position(t.Func)
		}
	case *ast.ChanType:
		return x.position(t.Begin)
	}
	return x.position(spec.Name.Pos())
}

func (x *extractor) position(p token.Pos) token.Position {
	if x.decl.Fset == nil || !p.IsValid() {
		return token.Position{}
	}
	return x.decl.Fset.Position(p)
}

func sealed(iface *types.Interface) bool {
	for i := 0; i < iface.NumMethods(); i++ {
		if !iface.Method(i).Exported() {
			return true
		}
	}
	return false
}

func isUnsafePointer(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Kind() == types.UnsafePointer
}
