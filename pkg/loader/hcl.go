package loader

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// hclExtension is the HCL spelling of the "_extension_" key; HCL identifiers
// cannot start with an underscore.
const hclExtension = "extension"

// ParseHCL decodes an HCL body whose top-level attributes are the
// configuration fields:
//
//	type    = "number"
//	min     = 0
//	integer = true
//	oneOf   = [{ type = "string" }, { type = "number" }]
//
// Expressions are evaluated without variables or functions.
func ParseHCL(data []byte, filename string) (any, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse schema hcl: %w", diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse schema hcl: %w", diags)
	}

	out := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %q: %w", name, diags)
		}
		v, err := fromCty(val)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %q: %w", name, err)
		}
		if name == hclExtension {
			name = "_extension_"
		}
		out[name] = v
	}
	return checkShape(out)
}

// fromCty converts a known cty value into plain Go values by way of JSON.
func fromCty(val cty.Value) (any, error) {
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	if val.IsNull() {
		return nil, nil
	}
	b, err := ctyjson.SimpleJSONValue{Value: val}.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
