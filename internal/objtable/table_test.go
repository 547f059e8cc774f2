package objtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmitMonotonicWithoutFrees(t *testing.T) {
	tbl := New()
	type obj struct{ n int }
	var handles []int32
	for i := 0; i < 5; i++ {
		handles = append(handles, tbl.Admit(&obj{n: i}))
	}
	for i, h := range handles {
		assert.Equal(t, int32(i), h)
	}
}

func TestAdmitIdentity(t *testing.T) {
	tbl := New()
	type obj struct{ n int }
	o := &obj{n: 1}
	h1 := tbl.Admit(o)
	h2 := tbl.Admit(o)
	assert.Equal(t, h1, h2)

	other := &obj{n: 1} // equal value, distinct identity
	h3 := tbl.Admit(other)
	assert.NotEqual(t, h1, h3)
}

func TestFreeFIFOReuse(t *testing.T) {
	tbl := New()
	type obj struct{ n int }
	var handles []int32
	for i := 0; i < 4; i++ {
		handles = append(handles, tbl.Admit(&obj{n: i}))
	}

	require.NoError(t, tbl.Free(handles[0]))
	require.NoError(t, tbl.Free(handles[1]))
	require.NoError(t, tbl.Free(handles[2]))

	h5 := tbl.Admit(&obj{n: 10})
	h6 := tbl.Admit(&obj{n: 11})
	h7 := tbl.Admit(&obj{n: 12})
	h8 := tbl.Admit(&obj{n: 13})

	assert.Equal(t, handles[0], h5)
	assert.Equal(t, handles[1], h6)
	assert.Equal(t, handles[2], h7)
	assert.Equal(t, int32(4), h8)
}

func TestFreeReleasesIdentity(t *testing.T) {
	tbl := New()
	type obj struct{ n int }
	o := &obj{n: 1}
	h1 := tbl.Admit(o)
	require.NoError(t, tbl.Free(h1))

	h2 := tbl.Admit(o)
	assert.Equal(t, h1, h2) // slot reused, same handle, but via fresh allocation
}

func TestResolveVacantErrors(t *testing.T) {
	tbl := New()
	h := tbl.Admit("x")
	require.NoError(t, tbl.Free(h))
	_, err := tbl.Resolve(h)
	assert.ErrorIs(t, err, ErrVacant)
}

func TestResolveOutOfRangeErrors(t *testing.T) {
	tbl := New()
	_, err := tbl.Resolve(42)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestFreeAlreadyVacantErrors(t *testing.T) {
	tbl := New()
	h := tbl.Admit("x")
	require.NoError(t, tbl.Free(h))
	err := tbl.Free(h)
	assert.ErrorIs(t, err, ErrVacant)
}

func TestResolveReturnsStoredValue(t *testing.T) {
	tbl := New()
	h := tbl.Admit("hello")
	v, err := tbl.Resolve(h)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestAdmitNilCollapsesToOneHandle(t *testing.T) {
	tbl := New()
	h1 := tbl.Admit(nil)
	h2 := tbl.Admit(nil)
	assert.Equal(t, h1, h2)
	v, err := tbl.Resolve(h1)
	require.NoError(t, err)
	assert.Nil(t, v)
}
