// Package function provides the registry of formatting functions callable
// from placeables, along with the NUMBER and DATETIME builtins.
//
// Custom functions are plain values of the Func type:
//
//	reg := function.NewRegistry()
//	err := reg.Register("UPPER", func(pos []value.Value, named map[string]value.Value) (value.Value, error) {
//		s, ok := pos[0].(value.String)
//		if !ok {
//			return nil, errors.New("UPPER wants a string")
//		}
//		return value.String(strings.ToUpper(string(s))), nil
//	})
//
// Function names are uppercase by convention, matching how they appear in
// translation sources: {NUMBER($n, maximumFractionDigits: 0)}.
package function
