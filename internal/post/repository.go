package post

import (
	"database/sql"

	"github.com/sirupsen/logrus"
)

type PostRepository struct{}

type PostRepositoryInterface interface {
	Create(tx *sql.Tx, post *Post) (int, error)
	ListAll(db *sql.DB) ([]*PostWithAuthor, error)
}

func NewPostRepository() PostRepositoryInterface {
	return &PostRepository{}
}

func (r *PostRepository) Create(
	tx *sql.Tx,
	post *Post,
) (int, error) {
	query := `
		INSERT INTO posts (
			user_id, title, content, created_at
		)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`

	var id int
	err := tx.QueryRow(
		query,
		post.UserID,
		post.Title,
		post.Content,
	).Scan(&id)

	if err != nil {
		return 0, err
	}

	return id, nil
}

// ListAll returns every post, newest first. The id tiebreak keeps the
// order stable when two posts share a timestamp.
func (r *PostRepository) ListAll(db *sql.DB) ([]*PostWithAuthor, error) {
	query := `
		SELECT
			p.id, p.user_id, p.title, p.content, p.created_at,
			u.username
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []*PostWithAuthor

	for rows.Next() {
		var p PostWithAuthor
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Title,
			&p.Content,
			&p.CreatedAt,
			&p.AuthorName,
		)
		if err != nil {
			logrus.Error("Error scanning post row: ", err)
			continue
		}
		posts = append(posts, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
