package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	errs "dimscale/core/errors"
)

// stringValue evaluates an attribute without variables. Unknown, null and
// non-string values are rejected rather than coerced.
func stringValue(attr *hcl.Attribute, filename string) (string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", diagError(filename, diags)
	}
	switch {
	case !val.IsKnown():
		return "", errs.Newf(errs.TypeParsing, "%s:%d: %s is not known", filename, attr.Range.Start.Line, attr.Name)
	case val.IsNull():
		return "", errs.Newf(errs.TypeParsing, "%s:%d: %s is null", filename, attr.Range.Start.Line, attr.Name)
	case val.Type() != cty.String:
		return "", errs.Newf(errs.TypeParsing, "%s:%d: %s must be a unit string, got %s",
			filename, attr.Range.Start.Line, attr.Name, val.Type().FriendlyName())
	}
	return val.AsString(), nil
}
