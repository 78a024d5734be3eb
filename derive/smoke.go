package derive

import "fmt"

// placeholder instantiates every type parameter in smoke tests.
const placeholder = "arbitrary.Unit"

// placeholderBounds are the only existing bounds placeholder satisfies.
var placeholderBounds = map[string]bool{
	"comparable": true,
}

// SmokeTest builds the test that runs gen through arbitrary.Check. When a
// type parameter carries a bound the placeholder cannot meet, no test is
// built and the returned warning says why.
func SmokeTest(schema *TypeSchema, gen *Generator) (*Smoke, *Warning) {
	for _, p := range schema.Generics {
		for _, b := range p.Bounds {
			if placeholderBounds[b] {
				continue
			}
			return nil, &Warning{
				Category: CategorySmokeTest,
				Pos:      schema.Pos,
				Message: fmt.Sprintf("no smoke test for %s: %s cannot satisfy bound %s of %s",
					schema.Name, placeholder, b, p.Name),
			}
		}
	}
	fresh := freshIn(referenced(schema))
	return &Smoke{
		Name:      testName(schema.Name),
		Type:      instantiate(schema.Name, schema.Generics, placeholder),
		Generator: instantiate(gen.Name, schema.Generics, placeholder),
		T:         fresh("t"),
		Prop:      fresh("prop"),
		Err:       fresh("err"),
	}, nil
}
