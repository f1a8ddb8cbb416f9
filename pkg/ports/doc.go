/*
Package ports defines the driven ports (interfaces) of the menutrail navigator.

These interfaces decouple the positional selectors from the host framework,
allowing the navigator to work with various menu stores, trail sources and
access policies.

# Key Interfaces

  - TreeLoader: Loads the (sub)tree of a menu for a set of LoadParameters.
  - LinkManager: Resolves link definitions and their ancestor chains.
  - ActiveTrailProvider: Hands out the active trail of the current request.
  - AccessChecker / NodeAccessChecker: Per-link and per-content access policies.
  - EntityRenderer: Renders an entity bound to a menu element (presentation only).
*/
package ports
