/*
Package domain contains the trace data model shared by every generator and
observation strategy.

It is kept pure and free of external dependencies like I/O, planners or
persistence, following Hexagonal Architecture principles. Entities are
immutable once built: masked views rebuild states instead of mutating them.

# Key Entities

  - CustomObject: a typed domain object.
  - Fluent: a ground predicate instance, identified by name and objects.
  - State / PartialState: fully and partially observed truth assignments.
  - Action: a grounded action with precondition, add and delete sets.
  - Step / Trace / TraceList: executions and their collections.
*/
package domain
