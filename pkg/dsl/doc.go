/*
Package dsl provides a fluent builder for constructing menus in Go.

It is an alternative to link documents on disk, useful for tests, demos and
menus generated at startup.

Example usage:

	package main

	import (
		"github.com/aretw0/menutrail/pkg/dsl"
	)

	func main() {
		b := dsl.New("main")

		b.Add("about").Title("About us")
		b.Add("team").Title("Team").Under("about")
		b.Add("history").Title("History").Under("about").Weight(1)
		b.Add("post").Title("Latest post").Node("42")

		b.Menu("footer").Add("legal").Title("Legal")

		// The store implements ports.TreeLoader and ports.LinkManager.
		store, err := b.Build()
		if err != nil {
			panic(err)
		}
		_ = store // pass to menutrail.WithStore(...)
	}
*/
package dsl
