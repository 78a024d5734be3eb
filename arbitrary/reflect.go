package arbitrary

import (
	"math"
	"reflect"

	"github.com/teranos/arbgen/errors"
)

var (
	sourceType = reflect.TypeFor[Source]()
	errorType  = reflect.TypeFor[error]()
)

// floatScale is the resolution of generated floats within one budget unit.
const floatScale = 1 << 20

// runes generated strings draw from
var alphabet = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 _-.:/\\\"'\t\nλ√€ñ日本🙂")

func generate(t reflect.Type, src Source) (reflect.Value, error) {
	if fn, ok := lookup(t); ok {
		return fn(src)
	}
	if m, ok := arbitraryMethod(t); ok {
		out := m.Func.Call([]reflect.Value{reflect.Zero(t), reflect.ValueOf(src)})
		if err, _ := out[1].Interface().(error); err != nil {
			return reflect.Value{}, err
		}
		return out[0], nil
	}

	v := reflect.New(t).Elem()
	b := src.Budget()

	switch t.Kind() {
	case reflect.Bool:
		v.SetBool(src.Intn(2) == 1)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		limit := int64(b)
		if bits := t.Bits(); bits < 64 {
			limit = min(limit, int64(1)<<(bits-1)-1)
		}
		v.SetInt(int64(src.Intn(int(2*limit+1))) - limit)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		limit := uint64(b)
		if bits := t.Bits(); bits < 64 {
			limit = min(limit, uint64(1)<<bits-1)
		}
		v.SetUint(uint64(src.Intn(int(limit + 1))))

	case reflect.Float32, reflect.Float64:
		v.SetFloat(randomFloat(src, b))

	case reflect.Complex64, reflect.Complex128:
		v.SetComplex(complex(randomFloat(src, b), randomFloat(src, b)))

	case reflect.String:
		n := src.Intn(b + 1)
		rs := make([]rune, n)
		for i := range rs {
			rs[i] = alphabet[src.Intn(len(alphabet))]
		}
		v.SetString(string(rs))

	case reflect.Pointer:
		if b == 0 || src.Intn(2) == 0 {
			return v, nil
		}
		elem, err := generate(t.Elem(), src)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		v.Set(p)

	case reflect.Slice:
		n := src.Intn(b + 1)
		s := reflect.MakeSlice(t, n, n)
		for i := 0; i < n; i++ {
			elem, err := generate(t.Elem(), src)
			if err != nil {
				return reflect.Value{}, err
			}
			s.Index(i).Set(elem)
		}
		v.Set(s)

	case reflect.Array:
		// The length is static, so every element is generated.
		for i := 0; i < t.Len(); i++ {
			elem, err := generate(t.Elem(), src)
			if err != nil {
				return reflect.Value{}, err
			}
			v.Index(i).Set(elem)
		}

	case reflect.Map:
		n := src.Intn(b + 1)
		m := reflect.MakeMapWithSize(t, n)
		for i := 0; i < n; i++ {
			key, err := generate(t.Key(), src)
			if err != nil {
				return reflect.Value{}, err
			}
			val, err := generate(t.Elem(), src)
			if err != nil {
				return reflect.Value{}, err
			}
			m.SetMapIndex(key, val)
		}
		v.Set(m)

	case reflect.Struct:
		var settable []int
		for i := 0; i < t.NumField(); i++ {
			if v.Field(i).CanSet() && t.Field(i).Name != "_" {
				settable = append(settable, i)
			}
		}
		// One reduced budget shared by every field, same as derived code.
		s := Reduce(src, len(settable))
		for _, i := range settable {
			f, err := generate(t.Field(i).Type, s)
			if err != nil {
				return reflect.Value{}, errors.Wrapf(err, "field %s.%s", t.Name(), t.Field(i).Name)
			}
			v.Field(i).Set(f)
		}

	case reflect.Interface:
		if t.NumMethod() == 0 {
			return v, nil
		}
		return reflect.Value{}, errors.Wrapf(ErrNoGenerator, "interface %s", t)

	default:
		return reflect.Value{}, errors.Wrapf(ErrUnsupported, "%s", t)
	}
	return v, nil
}

// arbitraryMethod finds an Arbitrary(Source) (T, error) method callable on
// the zero value of t.
func arbitraryMethod(t reflect.Type) (reflect.Method, bool) {
	m, ok := t.MethodByName("Arbitrary")
	if !ok || t.Kind() == reflect.Interface {
		return reflect.Method{}, false
	}
	ft := m.Type
	if ft.NumIn() != 2 || ft.In(1) != sourceType || ft.NumOut() != 2 {
		return reflect.Method{}, false
	}
	if ft.Out(0) != t || ft.Out(1) != errorType {
		return reflect.Method{}, false
	}
	return m, true
}

func randomFloat(src Source, budget int) float64 {
	if budget == 0 {
		return 0
	}
	f := float64(src.Intn(2*floatScale+1)-floatScale) / floatScale * float64(budget)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}
