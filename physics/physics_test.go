package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mictra/shrdlite-course-project/world"
)

// stacks: col0 = [table? no, a], col1 = [b, c], col2 = []
// a: large red brick, b: small white ball, c: large blue box
func fixture() ([][]string, map[string]world.Attributes) {
	stacks := [][]string{
		{"a"},
		{"b", "c"},
		{},
	}
	objects := map[string]world.Attributes{
		"a": {Form: world.Brick, Size: world.Large, Color: "red"},
		"b": {Form: world.Ball, Size: world.Small, Color: "white"},
		"c": {Form: world.Box, Size: world.Large, Color: "blue"},
	}
	return stacks, objects
}

func TestColumnAndHeight(t *testing.T) {
	stacks, _ := fixture()

	col, ok := ColumnOf(stacks, "c")
	assert.True(t, ok)
	assert.Equal(t, 1, col)

	pos, ok := HeightOf(stacks, "c", col)
	assert.True(t, ok)
	assert.Equal(t, 1, pos)

	_, ok = ColumnOf(stacks, "nonexistent")
	assert.False(t, ok)
}

func TestAboveCount(t *testing.T) {
	stacks, _ := fixture()
	assert.Equal(t, 1, AboveCount(stacks, "b"))
	assert.Equal(t, 0, AboveCount(stacks, "c"))
	assert.Equal(t, 0, AboveCount(stacks, "held-or-missing"))
}

func TestDirectionalRelations(t *testing.T) {
	stacks, _ := fixture()

	assert.True(t, IsLeftOf(stacks, []string{"b"}, 0))
	assert.False(t, IsLeftOf(stacks, []string{"a"}, 1))

	assert.True(t, IsRightOf(stacks, []string{"a"}, 1))
	assert.False(t, IsRightOf(stacks, []string{"b"}, 0))

	assert.True(t, IsBeside(stacks, []string{"a"}, 1))
	assert.False(t, IsBeside(stacks, []string{"a"}, 2))

	// floor is never a directional target
	assert.False(t, IsLeftOf(stacks, []string{world.FloorID}, 0))
	assert.False(t, IsBeside(stacks, []string{world.FloorID}, 0))
}

func TestOnTopInsideAboveUnder(t *testing.T) {
	stacks, objects := fixture()

	// c sits directly on b: b is "under" c, c is "ontop" of b.
	assert.True(t, IsOnTop(stacks, []string{"b"}, 1, 0))
	assert.True(t, IsUnder(stacks, []string{"c"}, 1, 1))
	assert.True(t, IsAbove(stacks, []string{"b"}, 1, 1))

	// floor: ontop holds only at the bottom position.
	assert.True(t, IsOnTop(stacks, []string{world.FloorID}, 0, -1))
	assert.False(t, IsOnTop(stacks, []string{world.FloorID}, 0, 0))

	// above always holds against the floor.
	assert.True(t, IsAbove(stacks, []string{world.FloorID}, 0, 0))

	// inside requires a box target, never the floor.
	assert.False(t, IsInside(stacks, objects, []string{"b"}, 1, 0))
	stacks2 := [][]string{{"c", "a"}}
	assert.True(t, IsInside(stacks2, objects, []string{"c"}, 0, 0))
	assert.False(t, IsInside(stacks2, objects, []string{world.FloorID}, 0, 0))
}

func TestSatisfiesRelationOffsets(t *testing.T) {
	stacks, objects := fixture()
	// c is at col=1, pos=1. "the box ontop of the ball" resolves c via
	// OnTop anchored at pos-1 == b's position.
	assert.True(t, SatisfiesRelation(OnTop, stacks, objects, 1, 1, []string{"b"}))
	assert.True(t, SatisfiesRelation(Above, stacks, objects, 1, 1, []string{"b"}))
	assert.True(t, SatisfiesRelation(Under, stacks, objects, 1, 0, []string{"c"}))
}

func TestIsValidGoal(t *testing.T) {
	objects := map[string]world.Attributes{
		"smallbrick": {Form: world.Brick, Size: world.Small},
		"largebox":   {Form: world.Box, Size: world.Large},
		"ball":       {Form: world.Ball, Size: world.Small},
		"smallbox":   {Form: world.Box, Size: world.Small},
		"smallpyr":   {Form: world.Pyramid, Size: world.Small},
		"largepyr":   {Form: world.Pyramid, Size: world.Large},
	}

	t.Run("a brick can go ontop of a large box", func(t *testing.T) {
		assert.True(t, IsValidGoal(objects, OnTop, "smallbrick", "largebox"))
	})

	t.Run("nothing can go ontop of a ball", func(t *testing.T) {
		assert.False(t, IsValidGoal(objects, OnTop, "smallbrick", "ball"))
	})

	t.Run("a large object cannot rest on a small one", func(t *testing.T) {
		assert.False(t, IsValidGoal(objects, OnTop, "largebox", "smallbrick"))
	})

	t.Run("a small box cannot rest on a small brick", func(t *testing.T) {
		assert.False(t, IsValidGoal(objects, OnTop, "smallbox", "smallbrick"))
	})

	t.Run("a large box cannot rest on a large pyramid", func(t *testing.T) {
		assert.False(t, IsValidGoal(objects, OnTop, "largebox", "largepyr"))
	})

	t.Run("ontop of the floor is always valid for a real object", func(t *testing.T) {
		assert.True(t, IsValidGoal(objects, OnTop, "smallbrick", world.FloorID))
	})

	t.Run("an object cannot relate to itself", func(t *testing.T) {
		assert.False(t, IsValidGoal(objects, OnTop, "smallbrick", "smallbrick"))
	})

	t.Run("floor cannot be the subject", func(t *testing.T) {
		assert.False(t, IsValidGoal(objects, OnTop, world.FloorID, "smallbrick"))
	})
}
