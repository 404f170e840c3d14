package post

import "time"

type Post struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostWithAuthor is the listing row: the post joined with the author's
// username for rendering.
type PostWithAuthor struct {
	Post
	AuthorName string `json:"author_name"`
}
