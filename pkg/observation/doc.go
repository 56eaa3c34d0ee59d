// Package observation derives partially observable steps from fully observed ones.
//
// A Method picks which fluents of a step stay visible. The result is a Token
// wrapping a step whose state is a domain.PartialState; every fluent that was
// not kept is unknown to the consumer.
package observation
