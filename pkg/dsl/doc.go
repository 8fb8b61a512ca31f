/*
Package dsl provides a fluent builder for dialogue-flow graphs.

It is mostly useful for tests and examples, where writing a flow file would be noise.

Example usage:

	g, err := dsl.New("welcome").
		Add("welcome").Text("Hi! What do you need?").
			Go("orders", "Track my order").
			Go("agent", "Talk to a person").
		Add("orders").Text("Enter your order number").
			Go("welcome", "이전 단계로").
		Add("agent").Text("Connecting you...").Terminal().
		Build()
*/
package dsl
