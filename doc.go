// Package fluentkit resolves Fluent-style localization messages against
// runtime arguments.
//
// A Bundle holds the messages, terms and formatting functions of one
// locale. Message patterns interpolate variables, select plural or
// grammatical variants, reference other messages and terms, and call
// formatting functions. Formatting is best effort: broken pieces render as
// placeholders while the rest of the message formats normally, so a
// translation mistake never takes a page down.
//
// Key Features:
//
//   - Never-fail formatting with precise diagnostics
//   - Plural-category selection from visible digits ("1.00" is not "1")
//   - Locale-aware number, currency and datetime formatting
//   - Result cache keyed by message, locale and arguments
//   - Concurrent formatting under a reentrant readers-writer lock
//   - Expansion budget against runaway nested references
//
// Basic Usage:
//
//	bundle, err := fluentkit.New("en-US")
//	if err != nil {
//		return err
//	}
//
//	err = bundle.AddResource(&ast.Resource{
//		Messages: []*ast.Message{{
//			ID: "welcome",
//			Value: ast.Pattern{
//				&ast.Text{Value: "Welcome, "},
//				&ast.Placeable{Expression: &ast.VariableReference{Name: "name"}},
//				&ast.Text{Value: "!"},
//			},
//		}},
//	})
//
//	text, err := bundle.FormatMessage("welcome", map[string]any{"name": "Ada"})
//	// text: "Welcome, ⁨Ada⁩!"
//
// Interpolated values are wrapped in Unicode bidi isolation marks by
// default; disable with WithIsolating(false) when output goes somewhere
// that cannot render them.
//
// Error Handling:
//
// FormatMessage always returns usable text. An unknown id renders as
// "{id}" with ErrMessageNotFound; inside a message, a missing variable
// renders as "{$name}", an unknown term as "{-name}", and so on, each
// recorded as a diagnostic. By default diagnostics are logged at Debug
// level through the configured slog.Logger. WithStrict(true) returns them
// joined into the error instead:
//
//	bundle, _ := fluentkit.New("en", fluentkit.WithStrict(true))
//	text, err := bundle.FormatMessage("welcome", nil)
//	// text: "Welcome, ⁨{$name}⁩!"
//	// err wraps resolver.ErrUnknownVariable
//
// Custom Functions:
//
// NUMBER and DATETIME are built in. Additional functions can be supplied
// at construction or registered later:
//
//	err := bundle.AddFunction("UPPER", func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
//		s, ok := pos[0].(value.String)
//		if !ok {
//			return nil, errors.New("UPPER wants a string")
//		}
//		return value.String(strings.ToUpper(string(s))), nil
//	})
package fluentkit
