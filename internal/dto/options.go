package dto

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/dateq/pkg/domain"
)

// OptionsPayload is a loosely-typed view of domain.SearchOptions, as it
// arrives from JSON bodies or MCP tool arguments. Pointer fields
// distinguish "absent" from zero, so payloads can override a base
// options block field by field.
type OptionsPayload struct {
	Operators *string  `json:"operators,omitempty" mapstructure:"operators"`
	Factorial *bool    `json:"factorial,omitempty" mapstructure:"factorial"`
	MaxGroups *int     `json:"max_groups,omitempty" mapstructure:"max_groups"`
	Tolerance *float64 `json:"tolerance,omitempty" mapstructure:"tolerance"`
	Workers   *int     `json:"workers,omitempty" mapstructure:"workers"`
}

// DecodeOptions maps a raw argument map onto an OptionsPayload.
// Decoding is weakly typed: "6" and 6.0 both land in an int field,
// matching how JSON-RPC and query params deliver numbers.
func DecodeOptions(raw map[string]any) (*OptionsPayload, error) {
	var payload OptionsPayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &payload,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &payload, nil
}

// Apply overlays the payload's set fields onto base and returns the
// result. Validation stays with the engine; Apply only carries values.
func (p *OptionsPayload) Apply(base domain.SearchOptions) domain.SearchOptions {
	if p == nil {
		return base
	}
	if p.Operators != nil {
		base.Operators = domain.OperatorSet(*p.Operators)
	}
	if p.Factorial != nil {
		base.Factorial = *p.Factorial
	}
	if p.MaxGroups != nil {
		base.MaxGroups = *p.MaxGroups
	}
	if p.Tolerance != nil {
		base.Tolerance = *p.Tolerance
	}
	if p.Workers != nil {
		base.Workers = *p.Workers
	}
	return base
}
