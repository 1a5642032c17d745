// Package state validates the request-scoped state an endpoint depends on,
// such as the authenticated user or a database handle, before the handler
// runs.
package state

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
)

// ErrUnknownProperty is returned by Factory.Validator for names the factory
// was not built with.
var ErrUnknownProperty = errors.New("state: unknown property")

// Factory builds validators over subsets of a fixed set of named state
// properties.
type Factory struct {
	validation map[string]dsl.Type
	required   map[string]bool
}

// NewFactory classifies every property once. A property is mandatory when its
// validator rejects dsl.Undefined.
func NewFactory(validation map[string]dsl.Type) *Factory {
	f := &Factory{
		validation: make(map[string]dsl.Type, len(validation)),
		required:   make(map[string]bool, len(validation)),
	}
	for name, t := range validation {
		f.validation[name] = t
		_, errs := dsl.Decode(t, dsl.Undefined)
		f.required[name] = len(errs) > 0
	}
	return f
}

// Names returns every property name, sorted.
func (f *Factory) Names() []string {
	names := make([]string, 0, len(f.validation))
	for name := range f.validation {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Required reports whether name is a mandatory property.
func (f *Factory) Required(name string) bool { return f.required[name] }

// Result is the outcome of validating a state object. ErroneousProperties
// lists the properties that failed, in the order their errors were reported.
type Result struct {
	skema.ValidationResult[map[string]any]
	ErroneousProperties []string
}

// Validator checks state objects against a subset of the factory's
// properties.
type Validator struct {
	// Properties are the validated names in declaration order.
	Properties []string
	// Type is the combined validator: mandatory properties are required and
	// optional ones may be absent.
	Type dsl.Type
}

// Validator builds a Validator for names, or for every property when names is
// empty.
func (f *Factory) Validator(names ...string) (*Validator, error) {
	if len(names) == 0 {
		names = f.Names()
	}
	var mandatory, optional []dsl.Field
	seen := make(map[string]bool, len(names))
	props := make([]string, 0, len(names))
	for _, name := range names {
		t, ok := f.validation[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		props = append(props, name)
		if f.required[name] {
			mandatory = append(mandatory, dsl.F(name, t))
		} else {
			optional = append(optional, dsl.F(name, t))
		}
	}
	return &Validator{
		Properties: props,
		Type:       dsl.Intersection(dsl.Interface(mandatory...), dsl.Partial(optional...)),
	}, nil
}

// Validate decodes input, which is normally a map[string]any of state values.
func (v *Validator) Validate(input any) Result {
	out, errs := dsl.Decode(v.Type, input)
	if len(errs) > 0 {
		return Result{
			ValidationResult:    skema.Fail[map[string]any](errs),
			ErroneousProperties: v.erroneous(errs),
		}
	}
	data, ok := out.(map[string]any)
	if !ok {
		return Result{ValidationResult: skema.Exception[map[string]any](
			fmt.Errorf("state: decoded %T, want an object", out))}
	}
	return Result{ValidationResult: skema.Succeed(data)}
}

// erroneous collects the property names from the error contexts. Each context
// is root, intersection branch, property, and then anything nested below it.
func (v *Validator) erroneous(errs dsl.Errors) []string {
	var names []string
	for _, e := range errs {
		keys := e.Context.Keys()
		if len(keys) < 3 {
			continue
		}
		name := keys[2]
		if slices.Contains(v.Properties, name) && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}
