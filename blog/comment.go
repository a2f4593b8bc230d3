package blog

import (
	"context"

	"github.com/skarle/blogstore/db"
	"github.com/skarle/blogstore/models"
	"github.com/skarle/blogstore/schema"
)

// CreateComment inserts a comment by userID on postID and returns the
// persisted row. Neither reference is checked beforehand; the store's
// foreign keys reject dangling ids.
func CreateComment(ctx context.Context, q db.Querier, userID, postID int64, body string) (*models.Comment, error) {
	d, err := dialectOf(q)
	if err != nil {
		return nil, err
	}

	nc := models.NewComment{UserID: userID, PostID: postID, Body: body}
	res, err := q.Exec(ctx, schema.Comments.InsertSQL(d), nc.PostID, nc.UserID, nc.Body)
	if err != nil {
		return nil, err
	}

	return models.ScanComment(createdRow(ctx, q, schema.Comments, d, res))
}

// DeleteComment removes the comment matching id and returns the number of
// rows deleted. Deleting a nonexistent id succeeds with a count of zero.
func DeleteComment(ctx context.Context, q db.Querier, id int64) (int64, error) {
	return deleteByKey(ctx, q, schema.Comments, id)
}
