package notify

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testhelpers "github.com/polkiloo/marketplace/internal/test"
)

func TestRegistryLastRegistrationWins(t *testing.T) {
	reg := NewRegistry()
	first := &testhelpers.ConnStub{}
	second := &testhelpers.ConnStub{}

	reg.Register("s1", first)
	reg.Register("s1", second)

	conn, ok := reg.Lookup("s1")
	require.True(t, ok)
	assert.Same(t, second, conn)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryDrop(t *testing.T) {
	reg := NewRegistry()
	a := &testhelpers.ConnStub{}
	b := &testhelpers.ConnStub{}
	reg.Register("s1", a)
	reg.Register("s2", b)

	reg.Drop(a)
	_, ok := reg.Lookup("s1")
	assert.False(t, ok)
	_, ok = reg.Lookup("s2")
	assert.True(t, ok)

	reg.Drop(&testhelpers.ConnStub{})
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryDropStaleConnectionKeepsReplacement(t *testing.T) {
	reg := NewRegistry()
	old := &testhelpers.ConnStub{}
	fresh := &testhelpers.ConnStub{}
	reg.Register("s1", old)
	reg.Register("s1", fresh)

	reg.Drop(old)

	conn, ok := reg.Lookup("s1")
	require.True(t, ok)
	assert.Same(t, fresh, conn)
}

func TestRegistryIgnoresEmptyRegistration(t *testing.T) {
	reg := NewRegistry()
	reg.Register("", &testhelpers.ConnStub{})
	reg.Register("s1", nil)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn := &testhelpers.ConnStub{}
			id := fmt.Sprintf("s%d", i%5)
			reg.Register(id, conn)
			reg.Lookup(id)
			if i%2 == 0 {
				reg.Drop(conn)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, reg.Len(), 5)
}

type closableConn struct {
	testhelpers.ConnStub
	closed bool
}

func (c *closableConn) Close() { c.closed = true }

func TestRegistryCloseAll(t *testing.T) {
	reg := NewRegistry()
	closable := &closableConn{}
	plain := &testhelpers.ConnStub{}
	reg.Register("s1", closable)
	reg.Register("s2", plain)

	reg.CloseAll()

	assert.True(t, closable.closed)
	assert.Equal(t, 0, reg.Len())
	_, ok := reg.Lookup("s2")
	assert.False(t, ok)
}
