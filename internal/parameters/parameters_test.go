package parameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfigString(t *testing.T) {
	params := NewFromConfigString("max_depth=4, parallel,,seed=a=b")
	assert.Equal(t, Params{"max_depth": "4", "parallel": "", "seed": "a=b"}, params)
	assert.Equal(t, []string{"max_depth", "parallel", "seed"}, params.Keys())
	assert.Empty(t, NewFromConfigString(""))
}

func TestGetParamOr(t *testing.T) {
	params := NewFromConfigString("depth=3,ratio=0.5,on,off=false,name=ab,bad=x")

	depth, err := GetParamOr(params, "depth", 9)
	require.NoError(t, err)
	assert.Equal(t, 3, depth)

	missing, err := GetParamOr(params, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, missing)

	ratio, err := GetParamOr(params, "ratio", float32(1))
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), ratio)

	on, err := GetParamOr(params, "on", false)
	require.NoError(t, err)
	assert.True(t, on)

	off, err := GetParamOr(params, "off", true)
	require.NoError(t, err)
	assert.False(t, off)

	name, err := GetParamOr(params, "name", "")
	require.NoError(t, err)
	assert.Equal(t, "ab", name)

	_, err = GetParamOr(params, "bad", 0)
	assert.Error(t, err)
	_, err = GetParamOr(params, "bad", false)
	assert.Error(t, err)
}

func TestPopParamOr(t *testing.T) {
	params := NewFromConfigString("depth=3,parallel,extra")
	depth, err := PopParamOr(params, "depth", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, depth)
	parallel, err := PopParamOr(params, "parallel", false)
	require.NoError(t, err)
	assert.True(t, parallel)

	err = CheckAllUsed(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extra")

	delete(params, "extra")
	assert.NoError(t, CheckAllUsed(params))
}
