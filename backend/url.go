package backend

import (
	"regexp"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
	"github.com/reoring/skema/i18n"
)

var defaultParameterRegExp = regexp.MustCompile(`[^/]+`)

// DefaultParameterRegExp matches one URL path segment.
func DefaultParameterRegExp() *regexp.Regexp { return defaultParameterRegExp }

// URLParameterSpec describes a single named URL path parameter.
type URLParameterSpec struct {
	Name      string
	RegExp    *regexp.Regexp
	Decoder   dsl.Type
	Validator FieldValidator
}

// URLParameter describes the path parameter name. A nil re means
// DefaultParameterRegExp.
func URLParameter(name string, decoder dsl.Type, re *regexp.Regexp) URLParameterSpec {
	if re == nil {
		re = DefaultParameterRegExp()
	}
	return URLParameterSpec{
		Name:      name,
		RegExp:    re,
		Decoder:   decoder,
		Validator: urlValidator(name, decoder),
	}
}

// URLParameterInfo is the declaration of one parameter for URLParameters.
type URLParameterInfo struct {
	Decoder dsl.Type
	// RegExp defaults to DefaultParameterRegExp.
	RegExp *regexp.Regexp
}

// URLParametersSpec holds the validators and metadata of a set of path
// parameters. Path parameters are always required.
type URLParametersSpec struct {
	Validators map[string]FieldValidator
	Metadata   map[string]URLParameterInfo
}

// URLParameters builds validators for named path parameters.
func URLParameters(validation map[string]URLParameterInfo) URLParametersSpec {
	spec := URLParametersSpec{
		Validators: make(map[string]FieldValidator, len(validation)),
		Metadata:   make(map[string]URLParameterInfo, len(validation)),
	}
	for name, info := range validation {
		if info.RegExp == nil {
			info.RegExp = DefaultParameterRegExp()
		}
		spec.Metadata[name] = info
		spec.Validators[name] = urlValidator(name, info.Decoder)
	}
	return spec
}

// Validate runs every validator against raw. See StringValidatorSpec.Validate.
func (s URLParametersSpec) Validate(raw map[string]any) (map[string]any, map[string]skema.ValidationResult[any]) {
	return StringValidatorSpec{Validators: s.Validators}.Validate(raw)
}

func urlValidator(name string, decoder dsl.Type) FieldValidator {
	return mandatory(skema.FromDecoder(decoder), decoder, true, i18n.T(i18n.CodeLabelURLParameter, nil), name)
}
