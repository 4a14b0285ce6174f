package stategraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mictra/shrdlite-course-project/world"
)

func fixtureNode() Node {
	return Node{
		Arm:     0,
		Holding: world.None,
		Stacks: [][]string{
			{"a"},
			{},
			{"b"},
		},
	}
}

func fixtureObjects() map[string]world.Attributes {
	return map[string]world.Attributes{
		"a": {Form: world.Brick, Size: world.Small},
		"b": {Form: world.Box, Size: world.Large},
	}
}

func TestSuccessorsOrderAndContent(t *testing.T) {
	n := fixtureNode()
	edges := Successors(n, fixtureObjects())

	require.Len(t, edges, 2, "pick and right are available; left is out of bounds and drop needs a held object")

	assert.Equal(t, Pick, edges[0].To.LastAction)
	assert.Equal(t, "a", edges[0].To.Holding)
	assert.Empty(t, edges[0].To.Stacks[0])

	assert.Equal(t, Right, edges[1].To.LastAction)
	assert.Equal(t, 1, edges[1].To.Arm)
}

func TestSuccessorsDropOnlyWhenHoldingAndValid(t *testing.T) {
	n := fixtureNode()
	n.Holding = "a"
	n.Arm = 2 // above the box

	edges := Successors(n, fixtureObjects())
	var sawDrop bool
	for _, e := range edges {
		if e.To.LastAction == Drop {
			sawDrop = true
			assert.Equal(t, world.None, e.To.Holding)
			assert.Equal(t, []string{"b", "a"}, e.To.Stacks[2])
		}
	}
	assert.True(t, sawDrop)
}

func TestSuccessorsAtBoundaryOmitsOutOfRangeMoves(t *testing.T) {
	n := fixtureNode()
	n.Arm = 0
	edges := Successors(n, fixtureObjects())
	for _, e := range edges {
		assert.NotEqual(t, Left, e.To.LastAction, "arm is already at the leftmost column")
	}
}

func TestNodeEqualIgnoresLastAction(t *testing.T) {
	a := fixtureNode()
	a.LastAction = Pick
	b := fixtureNode()
	b.LastAction = Drop
	assert.True(t, a.Equal(b))
}

func TestNodeKeyDistinguishesDistinctStates(t *testing.T) {
	a := fixtureNode()
	b := fixtureNode()
	b.Arm = 1
	assert.NotEqual(t, a.Key(), b.Key())

	c := fixtureNode()
	c.LastAction = Pick
	assert.Equal(t, a.Key(), c.Key(), "Key must not depend on LastAction")
}

func TestSuccessorsDoesNotAliasParentStacks(t *testing.T) {
	n := fixtureNode()
	edges := Successors(n, fixtureObjects())
	edges[0].To.Stacks[2][0] = "mutated"
	assert.Equal(t, "b", n.Stacks[2][0], "successor generation must not mutate the parent node")
}

func TestFromWorld(t *testing.T) {
	w := world.State{Arm: 1, Holding: "x", Stacks: [][]string{{"y"}}}
	n := FromWorld(w)
	assert.Equal(t, 1, n.Arm)
	assert.Equal(t, "x", n.Holding)
	assert.Equal(t, [][]string{{"y"}}, n.Stacks)

	n.Stacks[0][0] = "mutated"
	assert.Equal(t, "y", w.Stacks[0][0])
}
