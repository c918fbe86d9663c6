package model

import "time"

// Post is an "idea" submitted by a user for a particular repository.
//
// CommentsCount is not a column — list queries compute it with a JOIN so the
// feed can show "3 comments" without fetching every comment. It is zero on a
// freshly created post.
type Post struct {
	ID            string    `json:"id"`
	RepoName      string    `json:"repo_name"`
	Idea          string    `json:"idea"`
	CreatedAt     time.Time `json:"timestamp"`
	CommentsCount int       `json:"comments_count"`
}

// Comment belongs to exactly one Post. Deleting the post deletes its
// comments (ON DELETE CASCADE in the schema).
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"timestamp"`
}

// TrendingRepo is one entry in the /api/trending response, trimmed down from
// GitHub's much larger search result object.
type TrendingRepo struct {
	Name        string `json:"name"` // full name, e.g. "golang/go"
	URL         string `json:"url"`
	Stars       int    `json:"stars"`
	Description string `json:"description"`
	Forks       int    `json:"forks"`
}
