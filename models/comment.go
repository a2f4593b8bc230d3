package models

// Comment represents a row in the "comments" table. A comment belongs to one
// post and one user.
type Comment struct {
	id     int64
	postID int64
	userID int64
	body   string
}

// ScanComment constructs a Comment from a fetched row. Column order must
// match the comments table registry: comment_id, post_id, user_id,
// comment_body.
func ScanComment(row RowScanner) (*Comment, error) {
	var c Comment
	if err := row.Scan(&c.id, &c.postID, &c.userID, &c.body); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Comment) ID() int64     { return c.id }
func (c *Comment) PostID() int64 { return c.postID }
func (c *Comment) UserID() int64 { return c.userID }
func (c *Comment) Body() string  { return c.body }

// NewComment carries the caller-supplied fields for a comment insert.
type NewComment struct {
	UserID int64
	PostID int64
	Body   string
}
