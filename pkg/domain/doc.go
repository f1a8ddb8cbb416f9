/*
Package domain contains the core domain models of the menutrail navigator.

It defines the menu link definitions, the ordered menu tree handed back by a
Menu Store, the trail that anchors a position inside that tree, and the load
parameters that scope a tree load. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Link: A menu link definition (plugin id, menu, parent, route, weight, title).
  - Element: A node of a loaded tree (the link, its subtree and access verdict).
  - Tree: An ordered mapping of NodeId to Element; iteration order is sibling order.
  - Trail: A root-first path of node ids ending at the current position.
  - LoadParameters: The immutable description of which part of a menu to load.
  - Relation: Which positional view (children, parent, siblings, next, previous) to compute.
*/
package domain
