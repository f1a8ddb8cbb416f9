/*
Package menutrail answers positional questions about a node inside an ordered,
access-filtered menu tree: its children, its parent, its siblings, and the
sibling right after or right before it.

# Concept

A menu is a forest of links. The position of a request inside a menu is its
trail: the path of link ids from the menu root down to the current link. The
trail comes from the entity being viewed when that entity is bound to a link
of the menu, and from the site's active trail otherwise.

Every answer is a Tree: an ordered mapping from link id to element, holding
only links the viewer may access, in display order. A relation that does not
exist (the parent of a top-level link, the successor of the last sibling) is
an empty tree, never an error.

# Key Features

  - Hexagonal Architecture: menu storage, access control and the active trail
    are ports, with memory, file (Loam) and Redis adapters provided.
  - Explainable: Explain reports why a selection is empty.
  - Blocks: Build turns a selection into a displayable block with title
    overrides, entity binding and cache metadata.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/menutrail"
		"github.com/aretw0/menutrail/pkg/adapters/memory"
		"github.com/aretw0/menutrail/pkg/domain"
	)

	func main() {
		store := memory.NewStore(
			domain.Link{ID: "about", MenuName: "main", Title: "About", Enabled: true},
			domain.Link{ID: "team", MenuName: "main", Parent: "about", Title: "Team", Enabled: true},
			domain.Link{ID: "history", MenuName: "main", Parent: "about", Title: "History", Weight: 1, Enabled: true},
		)
		trail := memory.NewActiveTrail(store)
		trail.SetCurrent("main", "team")

		nav, err := menutrail.New("", menutrail.WithStore(store), menutrail.WithActiveTrail(trail))
		if err != nil {
			log.Fatal(err)
		}

		next, err := nav.Next(context.Background(), "main", nil)
		if err != nil {
			log.Fatal(err)
		}
		for current, el := range next.All() {
			fmt.Printf("after %s comes %s\n", current, el.Link.Title)
		}
	}
*/
package menutrail
