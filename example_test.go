package menutrail_test

import (
	"context"
	"fmt"

	"github.com/aretw0/menutrail"
	"github.com/aretw0/menutrail/pkg/adapters/memory"
	"github.com/aretw0/menutrail/pkg/domain"
)

func ExampleNavigator_Siblings() {
	store := memory.NewStore(
		domain.Link{ID: "about", MenuName: "main", Title: "About", Enabled: true},
		domain.Link{ID: "careers", MenuName: "main", Parent: "about", Title: "Careers", Weight: 2, Enabled: true},
		domain.Link{ID: "team", MenuName: "main", Parent: "about", Title: "Team", Enabled: true},
		domain.Link{ID: "history", MenuName: "main", Parent: "about", Title: "History", Weight: 1, Enabled: true},
	)
	trail := memory.NewActiveTrail(store)
	trail.SetCurrent("main", "history")

	nav, err := menutrail.New("", menutrail.WithStore(store), menutrail.WithActiveTrail(trail))
	if err != nil {
		panic(err)
	}

	siblings, _ := nav.Siblings(context.Background(), "main", nil)
	for id, el := range siblings.All() {
		fmt.Println(id, el.InActiveTrail)
	}
	// Output:
	// team false
	// history true
	// careers false
}

func ExampleNavigator_Explain() {
	store := memory.NewStore(domain.Link{ID: "home", MenuName: "main", Title: "Home", Enabled: true})
	trail := memory.StaticTrail{"main": {"home", ""}}

	nav, err := menutrail.New("", menutrail.WithStore(store), menutrail.WithActiveTrail(trail))
	if err != nil {
		panic(err)
	}

	sel, _ := nav.Explain(context.Background(), domain.RelationParent, "main", nil)
	fmt.Println(sel.Reason)
	// Output:
	// shallow_trail
}
