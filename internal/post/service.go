package post

import (
	"database/sql"
	"errors"
	"microblog/internal/events"
	"microblog/internal/observability"
	"microblog/internal/utils"

	"github.com/sirupsen/logrus"
)

// ErrEmptyField guards the store even when a caller skips form
// validation: a post never persists without a title and content.
var ErrEmptyField = errors.New("title and content are required")

type PostServiceInterface interface {
	CreatePost(authorID int, title, content string) (*Post, error)
	ListAll() ([]*PostWithAuthor, error)
}

type PostService struct {
	repo      PostRepositoryInterface
	db        *sql.DB
	publisher events.PublisherInterface
}

func NewPostService(repo PostRepositoryInterface, db *sql.DB, publisher events.PublisherInterface) PostServiceInterface {
	return &PostService{
		repo:      repo,
		db:        db,
		publisher: publisher,
	}
}

func (s *PostService) CreatePost(authorID int, title, content string) (*Post, error) {
	if title == "" || content == "" {
		return nil, ErrEmptyField
	}

	newPost := &Post{
		UserID:  authorID,
		Title:   title,
		Content: content,
	}

	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		id, err := s.repo.Create(tx, newPost)
		if err != nil {
			return err
		}
		newPost.ID = id
		return nil
	}); err != nil {
		return nil, err
	}

	observability.GlobalMetrics.PostsCreatedTotal.Inc()

	if s.publisher != nil {
		if err := s.publisher.Publish(&events.Event{
			Type:   events.PostCreated,
			UserID: newPost.UserID,
			PostID: newPost.ID,
			Title:  newPost.Title,
		}); err != nil {
			logrus.WithError(err).Warn("Failed to publish post.created event")
		}
	}

	return newPost, nil
}

// ListAll returns every post, newest first.
func (s *PostService) ListAll() ([]*PostWithAuthor, error) {
	return s.repo.ListAll(s.db)
}
