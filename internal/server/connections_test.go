package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionManagerAddRemove(t *testing.T) {
	assert := assert.New(t)
	cm := NewConnectionManager()

	assert.Equal(0, cm.Count())
	assert.Nil(cm.GetConnection("conn-1"))

	conn := newFakeConn("conn-1")
	cm.AddConnection(conn)

	assert.Equal(1, cm.Count())
	assert.Equal(conn, cm.GetConnection("conn-1"))

	cm.RemoveConnection("conn-1")

	assert.Equal(0, cm.Count())
	assert.Nil(cm.GetConnection("conn-1"))
}

func TestConnectionManagerReplaceSameID(t *testing.T) {
	assert := assert.New(t)
	cm := NewConnectionManager()

	first := newFakeConn("conn-1")
	second := newFakeConn("conn-1")

	cm.AddConnection(first)
	cm.AddConnection(second)

	assert.Equal(1, cm.Count())
	assert.Equal(Conn(second), cm.GetConnection("conn-1"))
}

func TestRemoveUnknownConnectionIsNoop(t *testing.T) {
	cm := NewConnectionManager()

	cm.RemoveConnection("never-added")

	assert.Equal(t, 0, cm.Count())
}
