/*
Package strips is the in-process planning engine object model.

It holds grounded STRIPS tasks the way an external planning toolkit exposes
them: atoms, literals, operators with a precondition formula and polarity
tagged effects, and immutable states made of true atoms. It deliberately does
not parse PDDL, ground schemas or search for plans; those are delegated to
the task file loader and the planner adapters.

# Key Entities

  - Atom / Literal / And: ground formulas.
  - Operator: a grounded action with precondition and effects.
  - State: an immutable set of true atoms.
  - Problem: objects, signatures, initial state, goal and operators.
  - SearchModel: applicability and progression over a Problem.
*/
package strips
