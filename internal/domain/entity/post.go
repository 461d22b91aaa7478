package entity

import "fmt"

// Post is a short text written by a user.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// IDLine formats the post identifier line.
func (p Post) IDLine() string {
	return fmt.Sprintf("Post ID: %d", p.ID)
}

// Comment is a reply attached to a post.
type Comment struct {
	ID     int    `json:"id"`
	PostID int    `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// FromLine formats the commenter attribution.
func (c Comment) FromLine() string {
	return "From: " + c.Email
}
