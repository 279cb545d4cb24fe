/*
Package dsl provides a fluent Go builder for constructing workflow
definitions programmatically.

It is an alternative to the YAML/JSON documents handled by pkg/schema:
definitions built here go through the same validation, but with type safety
and IDE autocompletion. Handy for tests and for workflows generated at
runtime.

Example usage:

	def, err := dsl.New("order").
		States("draft", "submitted", "completed").
		Initial("draft").
		Add("submit").From("draft").To("submitted").StampInto("submitted_at").
		Add("complete").From("submitted").To("completed").Label("Complete the order").
		Builder().
		MapEvent("order-submitted", "submit").
		Build()
*/
package dsl
