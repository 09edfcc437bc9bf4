// Package ast defines the template tree consumed by the resolver: messages,
// terms, patterns, and the expression kinds that can appear inside
// placeables.
//
// The tree is produced by an external parser or constructed programmatically;
// this package deliberately contains no parsing. Element, Expression, and
// VariantKey are sealed interfaces, so the set of node kinds is closed and
// consumers can type-switch exhaustively.
//
// Trees are immutable by convention: nothing in this module writes to a node
// after construction, which is what makes concurrent resolution against a
// shared tree safe.
//
// # Usage
//
// Building a message with a variable placeable:
//
//	msg := &ast.Message{
//		ID: "greeting",
//		Value: ast.Pattern{
//			&ast.Text{Value: "Hello, "},
//			&ast.Placeable{Expression: &ast.VariableReference{Name: "name"}},
//			&ast.Text{Value: "!"},
//		},
//	}
//
// Walk visits every expression in a pattern, which is how the bundle checks
// cross-references after a resource load:
//
//	ast.Walk(msg.Value, func(e ast.Expression) {
//		if ref, ok := e.(*ast.MessageReference); ok {
//			fmt.Println("references", ref.Name)
//		}
//	})
package ast
