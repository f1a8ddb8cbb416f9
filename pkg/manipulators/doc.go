/*
Package manipulators implements the menu tree transform pipeline.

A Transformer holds named manipulators and applies an ordered list of them to
a loaded tree. The default registry knows:

  - checkNodeAccess: batch access check for links pointing at content nodes;
    denied links are dropped together with their subtree.
  - checkAccess: per-link access check for every link still undecided;
    denied links are dropped.
  - filterDisabled: drops disabled links.
  - generateIndexAndSort: orders every level by weight, title and id. It must
    run last.
*/
package manipulators
