package ws

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySubscribeAndUnsubscribe(t *testing.T) {
	registry := NewRegistry()

	conn := &websocket.Conn{}
	sub := registry.Subscribe(1, conn, ConnInfo{UserID: 10})
	require.NotNil(t, sub)
	assert.Equal(t, 1, sub.RoomID())
	assert.Equal(t, 1, registry.SubscriberCount(1))

	registry.Unsubscribe(sub)
	assert.Equal(t, 0, registry.SubscriberCount(1))
	assert.Empty(t, registry.SubscribersOf(1))
}

func TestRegistryUnsubscribeTwice(t *testing.T) {
	registry := NewRegistry()

	sub := registry.Subscribe(1, &websocket.Conn{}, ConnInfo{})
	registry.Unsubscribe(sub)
	registry.Unsubscribe(sub)
	registry.Unsubscribe(nil)

	assert.Equal(t, 0, registry.SubscriberCount(1))
}

func TestRegistryTracksRoomsIndependently(t *testing.T) {
	registry := NewRegistry()

	subA := registry.Subscribe(1, &websocket.Conn{}, ConnInfo{UserID: 10})
	registry.Subscribe(2, &websocket.Conn{}, ConnInfo{UserID: 20})

	assert.Equal(t, 1, registry.SubscriberCount(1))
	assert.Equal(t, 1, registry.SubscriberCount(2))

	registry.Unsubscribe(subA)
	assert.Equal(t, 0, registry.SubscriberCount(1))
	assert.Equal(t, 1, registry.SubscriberCount(2))
}

func TestRegistryTwoTabsAreDistinctSubscriptions(t *testing.T) {
	registry := NewRegistry()

	// Same user on two connections: both must be fan-out targets.
	registry.Subscribe(1, &websocket.Conn{}, ConnInfo{UserID: 10})
	registry.Subscribe(1, &websocket.Conn{}, ConnInfo{UserID: 10})

	subs := registry.SubscribersOf(1)
	require.Len(t, subs, 2)
}

func TestRegistrySnapshotIsACopy(t *testing.T) {
	registry := NewRegistry()

	sub := registry.Subscribe(1, &websocket.Conn{}, ConnInfo{})
	snapshot := registry.SubscribersOf(1)
	require.Len(t, snapshot, 1)

	registry.Unsubscribe(sub)
	// The snapshot taken before the unsubscribe is unchanged.
	assert.Len(t, snapshot, 1)
	assert.Equal(t, 0, registry.SubscriberCount(1))
}
