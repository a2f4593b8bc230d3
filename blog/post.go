package blog

import (
	"context"

	"github.com/skarle/blogstore/db"
	"github.com/skarle/blogstore/models"
	"github.com/skarle/blogstore/schema"
)

// CreatePost inserts a post authored by userID and returns the persisted
// row. The referenced user is not checked beforehand; a dangling userID is
// rejected by the store's foreign key and surfaces as
// db.ErrForeignKeyViolation.
func CreatePost(ctx context.Context, q db.Querier, title, body string, published bool, userID int64) (*models.Post, error) {
	d, err := dialectOf(q)
	if err != nil {
		return nil, err
	}

	np := models.NewPost{Title: title, Body: body, Published: published, UserID: userID}
	res, err := q.Exec(ctx, schema.Posts.InsertSQL(d), np.Title, np.Body, np.Published, np.UserID)
	if err != nil {
		return nil, err
	}

	return models.ScanPost(createdRow(ctx, q, schema.Posts, d, res))
}

// DeletePost removes the post matching postID and returns the number of rows
// deleted. Deleting a nonexistent id succeeds with a count of zero.
func DeletePost(ctx context.Context, q db.Querier, postID int64) (int64, error) {
	return deleteByKey(ctx, q, schema.Posts, postID)
}
