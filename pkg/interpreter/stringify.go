package interpreter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Gejsi/qalo/pkg/runtime"
)

// Render turns a runtime value into its display form: integers in decimal,
// booleans as true/false, strings as their raw contents, collections as
// recursive listings, functions and builtins as opaque placeholders. Hash
// entries are rendered in sorted key order so output is deterministic.
func Render(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.IntegerValue:
		return strconv.FormatInt(int64(v.Val), 10)
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case runtime.StringValue:
		return v.Val
	case runtime.NullValue:
		return "null"
	case *runtime.ArrayValue:
		parts := make([]string, 0, len(v.Elements))
		for _, el := range v.Elements {
			parts = append(parts, Render(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *runtime.HashValue:
		keys := make([]string, 0, len(v.Pairs))
		for k := range v.Pairs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+Render(v.Pairs[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *runtime.FunctionValue:
		return "[function]"
	case runtime.BuiltinValue:
		return "[builtin]"
	default:
		return "[" + val.Kind().String() + "]"
	}
}
