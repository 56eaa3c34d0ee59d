/*
Package ports defines the driven ports (interfaces) for the trace generators.

These interfaces decouple the generators from the planning engine, the plan
sources and the storage backends.

# Key Interfaces

  - SearchModel: applicability and progression over native states.
  - Planner: produces plans (sequences of grounded operators) for a problem.
  - TraceStore: persists and loads generated TraceLists.
*/
package ports
