package model

type Comment struct {
	ID        int64    `json:"id"`
	Content   string   `json:"content"`
	User      *User    `json:"user,omitempty"`
	PostID    int64    `json:"postId,omitempty"`
	CreatedAt DateTime `json:"createdAt"`
	UpdatedAt DateTime `json:"updatedAt"`
}

type CommentRequest struct {
	Content string `json:"content"`
}
