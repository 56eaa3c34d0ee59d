package dsl

import "github.com/aretw0/plantrace/pkg/strips"

// OperatorBuilder provides a fluent API for configuring a grounded operator.
type OperatorBuilder struct {
	op  strips.Operator
	pre []strips.Literal
}

// Pre adds precondition literals.
func (o *OperatorBuilder) Pre(lits ...strips.Literal) *OperatorBuilder {
	o.pre = append(o.pre, lits...)
	return o
}

// Add adds an add effect.
func (o *OperatorBuilder) Add(predicate string, args ...string) *OperatorBuilder {
	o.op.Effects = append(o.op.Effects, strips.Add(predicate, args...))
	return o
}

// Del adds a delete effect.
func (o *OperatorBuilder) Del(predicate string, args ...string) *OperatorBuilder {
	o.op.Effects = append(o.op.Effects, strips.Del(predicate, args...))
	return o
}

// Build returns the underlying strips.Operator.
// A single precondition literal stays atomic; several become a conjunction.
func (o *OperatorBuilder) Build() strips.Operator {
	op := o.op
	if len(o.pre) > 0 {
		op.Precondition = strips.Conjoin(o.pre...)
	}
	return op
}
