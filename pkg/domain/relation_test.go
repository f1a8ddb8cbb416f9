package domain_test

import (
	"testing"

	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelation(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Relation
	}{
		{"children", domain.RelationChildren},
		{"Parent", domain.RelationParent},
		{" sibling ", domain.RelationSiblings},
		{"siblings", domain.RelationSiblings},
		{"next", domain.RelationNext},
		{"prev", domain.RelationPrevious},
		{"PREVIOUS", domain.RelationPrevious},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseRelation(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := domain.ParseRelation("cousin")
	assert.ErrorIs(t, err, domain.ErrUnknownRelation)
}

func TestRelation_MinDepth(t *testing.T) {
	assert.Equal(t, 0, domain.RelationChildren.MinDepth())
	assert.Equal(t, 0, domain.RelationSiblings.MinDepth())
	assert.Equal(t, 1, domain.RelationNext.MinDepth())
	assert.Equal(t, 1, domain.RelationPrevious.MinDepth())
	assert.Equal(t, 2, domain.RelationParent.MinDepth())
}

func TestLoadParameters(t *testing.T) {
	base := domain.NewLoadParameters("a")
	p := base.WithOnlyEnabled().WithMinDepth(0).WithMaxDepth(1).WithActiveTrail([]string{"b", "a", ""})

	assert.False(t, base.OnlyEnabled, "With* must not mutate the receiver")
	assert.True(t, p.OnlyEnabled)
	assert.Equal(t, 1, p.EffectiveMinDepth())
	assert.True(t, p.InActiveTrail("a"))
	assert.False(t, p.InActiveTrail(domain.RootID))
	assert.NoError(t, p.Validate())

	assert.ErrorIs(t, base.WithMinDepth(3).WithMaxDepth(2).Validate(), domain.ErrInvalidParameters)
	assert.ErrorIs(t, base.WithMinDepth(-1).Validate(), domain.ErrInvalidParameters)
	assert.NoError(t, base.WithMinDepth(3).Validate(), "max depth 0 is unlimited")
}
