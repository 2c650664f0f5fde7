package registry

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upper struct{}

func (upper) Name() string { return "upper" }

func (upper) Apply(text string, _ json.RawMessage) (string, error) {
	return strings.ToUpper(text), nil
}

func TestRegistry(t *testing.T) {
	r := New()
	assert.Empty(t, r.Names())

	r.Register(upper{})
	op, ok := r.Get("upper")
	require.True(t, ok)
	assert.Equal(t, "upper", op.Name())
	assert.Equal(t, []string{"upper"}, r.Names())

	_, ok = r.Get("lower")
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	r := New()
	r.Register(upper{})

	res, err := r.Apply(context.Background(), "upper", "abc", nil)
	require.NoError(t, err)
	assert.Equal(t, "ABC", res.Text)
	assert.True(t, res.Changed)

	res, err = r.Apply(context.Background(), "upper", "ABC", nil)
	require.NoError(t, err)
	assert.False(t, res.Changed)

	_, err = r.Apply(context.Background(), "lower", "abc", nil)
	assert.ErrorIs(t, err, ErrUnknownOperation)
}
