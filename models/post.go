package models

// Post represents a row in the "posts" table. A post belongs to exactly one
// user via UserID.
type Post struct {
	id        int64
	title     string
	body      string
	published bool
	userID    int64
}

// ScanPost constructs a Post from a fetched row. Column order must match the
// posts table registry: post_id, title, post_body, published, user_id.
func ScanPost(row RowScanner) (*Post, error) {
	var p Post
	if err := row.Scan(&p.id, &p.title, &p.body, &p.published, &p.userID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Post) ID() int64       { return p.id }
func (p *Post) Title() string   { return p.title }
func (p *Post) Body() string    { return p.body }
func (p *Post) Published() bool { return p.published }
func (p *Post) UserID() int64   { return p.userID }

// NewPost carries the caller-supplied fields for a post insert.
type NewPost struct {
	Title     string
	Body      string
	Published bool
	UserID    int64
}
