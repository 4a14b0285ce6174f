package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() State {
	return State{
		Arm:     0,
		Holding: None,
		Stacks: [][]string{
			{"a", "b"},
			{},
			{"c"},
		},
		Objects: map[string]Attributes{
			"a": {Form: Brick, Size: Large, Color: "red"},
			"b": {Form: Ball, Size: Small, Color: "white"},
			"c": {Form: Box, Size: Large, Color: "blue"},
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid state passes", func(t *testing.T) {
		require.NoError(t, Validate(sampleState()))
	})

	t.Run("arm out of bounds", func(t *testing.T) {
		s := sampleState()
		s.Arm = 5
		assert.Error(t, Validate(s))
	})

	t.Run("no columns", func(t *testing.T) {
		s := State{Stacks: nil}
		assert.Error(t, Validate(s))
	})

	t.Run("floor id reserved as object", func(t *testing.T) {
		s := sampleState()
		s.Objects[FloorID] = Attributes{Form: Brick}
		assert.Error(t, Validate(s))
	})

	t.Run("duplicate id across stacks", func(t *testing.T) {
		s := sampleState()
		s.Stacks[1] = []string{"a"}
		assert.Error(t, Validate(s))
	})

	t.Run("duplicate id between holding and a stack", func(t *testing.T) {
		s := sampleState()
		s.Holding = "a"
		assert.Error(t, Validate(s))
	})

	t.Run("stacked id missing attributes", func(t *testing.T) {
		s := sampleState()
		s.Stacks[0] = append(s.Stacks[0], "ghost")
		assert.Error(t, Validate(s))
	})
}

func TestCloneIsDeepAndIndependent(t *testing.T) {
	s := sampleState()
	clone := s.Clone()

	clone.Stacks[0][0] = "mutated"
	clone.Objects["a"] = Attributes{Form: Ball}

	assert.Equal(t, "a", s.Stacks[0][0], "mutating the clone's stack must not affect the original")
	assert.Equal(t, Brick, s.Objects["a"].Form, "mutating the clone's objects must not affect the original")
}

func TestNumColumns(t *testing.T) {
	assert.Equal(t, 3, sampleState().NumColumns())
}
