package derive

import (
	"fmt"
	"strings"
)

const (
	// RuntimePath is the package generated code calls into. It is always
	// imported under runtimeName.
	RuntimePath = "github.com/teranos/arbgen/arbitrary"
	runtimeName = "arbitrary"
)

// capabilityBound is the constraint every type parameter needs so the
// generator can produce values of it.
const capabilityBound = "arbitrary.Arbitrary[%s]"

// Constrain appends the capability bound to every type parameter, keeping
// existing bounds and parameter order. The input is not modified.
func Constrain(params []GenericParam) []GenericParam {
	if len(params) == 0 {
		return nil
	}
	out := make([]GenericParam, len(params))
	for i, p := range params {
		bounds := make([]string, 0, len(p.Bounds)+1)
		bounds = append(bounds, p.Bounds...)
		out[i] = GenericParam{
			Name:   p.Name,
			Bounds: append(bounds, fmt.Sprintf(capabilityBound, p.Name)),
		}
	}
	return out
}

// ParamList renders a type-parameter list: [A arbitrary.Arbitrary[A], K
// interface{ comparable; arbitrary.Arbitrary[K] }]. Empty when there are no
// parameters.
func ParamList(params []GenericParam) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + " " + constraint(p.Bounds)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ArgList renders the matching argument list for the self type: [A, K].
func ArgList(params []GenericParam) string {
	return argList(params)
}

func constraint(bounds []string) string {
	switch len(bounds) {
	case 0:
		return "any"
	case 1:
		return bounds[0]
	default:
		return "interface{ " + strings.Join(bounds, "; ") + " }"
	}
}
