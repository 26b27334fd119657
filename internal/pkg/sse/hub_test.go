package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	hub := NewHub()

	emp, cleanupEmp := hub.Subscribe(TopicEmployee("e1"))
	defer cleanupEmp()
	other, cleanupOther := hub.Subscribe(TopicEmployee("e2"))
	defer cleanupOther()

	hub.Publish(TopicEmployee("e1"), Event{Name: "alert_e1", Data: "hello"})

	require.Len(t, emp, 1)
	got := <-emp
	assert.Equal(t, "alert_e1", got.Name)
	assert.Equal(t, "hello", got.Data)
	assert.Len(t, other, 0)
}

func TestHub_PublishToManyDeliversOncePerChannel(t *testing.T) {
	hub := NewHub()

	admin, cleanup := hub.Subscribe(TopicAdmins, TopicEmployee("e1"))
	defer cleanup()

	hub.PublishToMany([]string{TopicAdmins, TopicEmployee("e1")}, Event{Name: "sale-created"})

	assert.Len(t, admin, 1)
}

func TestHub_FullBufferDropsEvents(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(TopicAdmins)
	defer cleanup()

	for i := 0; i < 25; i++ {
		hub.Publish(TopicAdmins, Event{Name: "receipt-created"})
	}

	assert.Len(t, ch, cap(ch))
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(TopicAdmins, TopicEmployee("e1"))
	assert.Equal(t, 1, hub.SubscriberCount(TopicAdmins))
	assert.Equal(t, 1, hub.TotalSubscribers())

	cleanup()
	cleanup() // second call is a no-op

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount(TopicAdmins))
	assert.Equal(t, 0, hub.TotalSubscribers())

	// publishing after cleanup must not panic
	hub.Publish(TopicAdmins, Event{Name: "sale-deleted"})
}
