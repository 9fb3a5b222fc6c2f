package hub

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRooms_JoinLeaveIdempotent(t *testing.T) {
	req := require.New(t)
	r := NewRooms()
	a, b := testConn("a"), testConn("b")

	req.True(r.Join(a, "conversation:c1"))
	req.False(r.Join(a, "conversation:c1"))
	req.True(r.Join(b, "conversation:c1"))
	req.False(r.Join(a, ""))
	req.False(r.Join(nil, "conversation:c1"))

	req.ElementsMatch([]*Conn{a, b}, r.Members("conversation:c1"))

	req.True(r.Leave(a, "conversation:c1"))
	req.False(r.Leave(a, "conversation:c1"))
	req.Equal([]*Conn{b}, r.Members("conversation:c1"))
}

func TestRooms_LeaveAllCascades(t *testing.T) {
	req := require.New(t)
	r := NewRooms()
	a, b := testConn("a"), testConn("b")
	r.Join(a, ConversationRoom("c1"))
	r.Join(a, CallRoom("r1"))
	r.Join(b, ConversationRoom("c1"))

	left := r.LeaveAll(a)
	req.ElementsMatch([]string{"conversation:c1", "call:r1"}, left)
	req.Empty(r.RoomsOf(a))
	req.False(r.IsMember(a, ConversationRoom("c1")))
	req.True(r.IsMember(b, ConversationRoom("c1")))

	// Empty rooms disappear
	req.Equal(1, r.Len())
}

func TestRooms_SameIDDifferentConnection(t *testing.T) {
	r := NewRooms()
	old := testConn("x")
	r.Join(old, "conversation:c1")

	require.False(t, r.IsMember(testConn("x"), "conversation:c1"))
}
