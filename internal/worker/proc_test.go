package worker

import (
	"testing"

	"microblog/internal/events"

	"github.com/stretchr/testify/assert"
)

func TestHandleEvent_WelcomeEmail(t *testing.T) {
	err := handleEvent(&events.Event{
		Type:     events.UserRegistered,
		UserID:   1,
		Username: "alice",
		Email:    "alice@x.com",
	}, 1)

	assert.NoError(t, err)
}

func TestHandleEvent_WelcomeEmail_MissingEmail(t *testing.T) {
	err := handleEvent(&events.Event{
		Type:   events.UserRegistered,
		UserID: 1,
	}, 1)

	assert.Error(t, err)
}

func TestHandleEvent_PostNotification(t *testing.T) {
	err := handleEvent(&events.Event{
		Type:   events.PostCreated,
		UserID: 1,
		PostID: 42,
		Title:  "Hi",
	}, 1)

	assert.NoError(t, err)
}

func TestHandleEvent_PostNotification_MissingPostID(t *testing.T) {
	err := handleEvent(&events.Event{
		Type:   events.PostCreated,
		UserID: 1,
	}, 1)

	assert.Error(t, err)
}

func TestHandleEvent_UnknownType(t *testing.T) {
	err := handleEvent(&events.Event{Type: "user.deleted"}, 1)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}
