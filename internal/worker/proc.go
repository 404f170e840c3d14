package worker

import (
	"fmt"
	"time"

	"microblog/internal/events"

	"github.com/sirupsen/logrus"
)

func handleEvent(event *events.Event, workerID int) error {
	switch event.Type {
	case events.UserRegistered:
		return processWelcomeEmail(event, workerID)
	case events.PostCreated:
		return processPostNotification(event, workerID)
	default:
		return fmt.Errorf("unknown event type: %s", event.Type)
	}
}

// processWelcomeEmail simulates sending the sign-up mail.
func processWelcomeEmail(event *events.Event, workerID int) error {
	if event.Email == "" {
		return fmt.Errorf("user.registered event without email")
	}

	logrus.Infof("Worker %d sending welcome email to %s", workerID, event.Email)
	time.Sleep(200 * time.Millisecond)
	logrus.Infof("Worker %d welcome email sent to %s", workerID, event.Email)
	return nil
}

// processPostNotification simulates fanning a new post out to readers.
func processPostNotification(event *events.Event, workerID int) error {
	if event.PostID == 0 {
		return fmt.Errorf("post.created event without post id")
	}

	logrus.Infof("Worker %d notifying readers about post %d (%q)", workerID, event.PostID, event.Title)
	time.Sleep(100 * time.Millisecond)
	return nil
}
