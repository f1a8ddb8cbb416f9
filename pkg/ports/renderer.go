package ports

import (
	"context"

	"github.com/aretw0/menutrail/pkg/domain"
)

// EntityRenderer renders an entity bound to a menu element in a view mode.
type EntityRenderer interface {
	RenderEntity(ctx context.Context, ref domain.EntityRef) (string, error)
}
