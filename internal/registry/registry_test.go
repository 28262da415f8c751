package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/monopoly-backend/internal/engine"
)

func build(code string) *engine.Room { return &engine.Room{Code: code} }

func scripted(codes ...string) func() (string, error) {
	return func() (string, error) {
		if len(codes) == 0 {
			return "", errors.New("out of codes")
		}
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}
}

func TestGenerateCode_Format(t *testing.T) {
	for range 50 {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
	}
}

func TestCreate_RetriesOnCollision(t *testing.T) {
	r := New()
	r.generate = scripted("AAAAAA", "AAAAAA", "BBBBBB")

	first, err := r.Create(build)
	require.NoError(t, err)
	second, err := r.Create(build)
	require.NoError(t, err)

	assert.Equal(t, "AAAAAA", first.Code)
	assert.Equal(t, "BBBBBB", second.Code)
	assert.Equal(t, 2, r.Len())
}

func TestCreate_GivesUp(t *testing.T) {
	r := New()
	r.rooms["AAAAAA"] = build("AAAAAA")
	r.generate = func() (string, error) { return "AAAAAA", nil }

	_, err := r.Create(build)
	require.ErrorIs(t, err, ErrCodesExhausted)
	assert.Equal(t, 1, r.Len())
}

func TestGet_IsCaseInsensitive(t *testing.T) {
	r := New()
	r.generate = scripted("ZED123")
	created, err := r.Create(build)
	require.NoError(t, err)

	got, err := r.Get(" zed123 ")
	require.NoError(t, err)
	assert.Same(t, created, got)

	_, err = r.Get("NOPE00")
	require.ErrorIs(t, err, engine.ErrRoomNotFound)
}

func TestDelete(t *testing.T) {
	r := New()
	r.generate = scripted("ZED123")
	_, err := r.Create(build)
	require.NoError(t, err)

	r.Delete("zed123")
	_, err = r.Get("ZED123")
	require.ErrorIs(t, err, engine.ErrRoomNotFound)
	assert.Empty(t, r.Rooms())
}
