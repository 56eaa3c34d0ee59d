/*
Package observability exposes trace generation metrics.

Metrics plugs into domain.GenerationHooks so any generator reports accepted
traces, dead ends, duplicate plans and timeouts to Prometheus. Logging is
handled separately by the structured logger passed to each component.
*/
package observability
