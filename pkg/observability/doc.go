/*
Package observability turns navigator lifecycle events into Prometheus metrics
and structured log lines.

Hooks built here are plain domain.LifecycleHooks and can be passed to
menutrail.WithLifecycleHooks directly or merged with caller hooks.
*/
package observability
