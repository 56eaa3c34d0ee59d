/*
Package plantrace generates execution traces for symbolic planning problems
and derives partially observable views of them for model learning.

# Concept

A planning problem is a set of typed objects, an initial state, a goal and
grounded operators. plantrace walks the problem's state space and records
each visited state together with the action taken, producing traces that
action-model learners consume.

# Generators

  - Random: uniform random rollouts of a fixed length. Dead ends restart the
    rollout up to a retry budget.
  - Sample: traces that follow plans from a Planner. Duplicate plans are
    rejected while the unique plan budget lasts; after that plans are reused.
    Each trace ends in a terminal step with no action.

# Usage

	eng, err := plantrace.Load("blocks.yaml",
		plantrace.WithPlanner(planner),
		plantrace.WithSeed(42),
	)
	if err != nil {
		log.Fatal(err)
	}

	list, err := eng.Sample(ctx, 10, 0)
	if err != nil {
		log.Fatal(err)
	}

	method, _ := observation.RandomSubset(nil, 30)
	tokens, err := eng.Observe(list, method)

# Observation

Tokenizing a step keeps its action and index and replaces its state with a
domain.PartialState. Fluents that are not kept are unknown rather than false.
*/
package plantrace
