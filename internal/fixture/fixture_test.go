package fixture

import (
	"testing"

	"blocksplanner/internal/blocksworld"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadThreeColumn(t *testing.T) {
	state, err := Load("testdata/three_column.yaml")
	require.NoError(t, err)

	assert.Equal(t, 3, state.NumColumns())
	assert.Equal(t, 0, state.Arm)
	assert.Equal(t, blocksworld.Label(""), state.Holding)

	col, height, ok := state.ColumnOf("a")
	require.True(t, ok)
	assert.Equal(t, 2, col)
	assert.Equal(t, 0, height)

	def, ok := state.Objects.Lookup("e")
	require.True(t, ok)
	assert.Equal(t, blocksworld.FormBox, def.Form)
	assert.Equal(t, blocksworld.SizeLarge, def.Size)
}

func TestParseDefaultsUnspecified(t *testing.T) {
	state, err := Parse([]byte(`
objects:
  x:
    form: brick
stacks:
  - [x]
arm: 0
`))
	require.NoError(t, err)
	def, ok := state.Objects.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, blocksworld.SizeUnspecified, def.Size)
	assert.Equal(t, blocksworld.ColorUnspecified, def.Color)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does_not_exist.yaml")
	assert.Error(t, err)
}

func TestLoadTwoBallsWorld(t *testing.T) {
	state, err := Load("testdata/two_balls.yaml")
	require.NoError(t, err)

	labels := state.AllLabels()
	assert.Len(t, labels, 3)
}

func TestParseHoldingField(t *testing.T) {
	state, err := Parse([]byte(`
objects:
  a:
    form: ball
stacks:
  - []
arm: 0
holding: a
`))
	require.NoError(t, err)
	assert.Equal(t, blocksworld.Label("a"), state.Holding)
}
