/*
Package observability exposes the search lifecycle as Prometheus
metrics.

It plugs into the engine through domain.LifecycleHooks, so hosts that
already register hooks can merge these in with domain.MergeHooks.
*/
package observability
