package api

import (
	"context"

	"github.com/jrsteele09/skillshare-client/model"
)

func (c *Client) Comments(ctx context.Context, postID int64) ([]model.Comment, error) {
	var comments []model.Comment
	if err := c.get(ctx, c.endpoint("posts", id(postID), "comments"), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, postID int64, content string) (*model.Comment, error) {
	var comment model.Comment
	body := model.CommentRequest{Content: content}
	if err := c.post(ctx, c.endpoint("posts", id(postID), "comments"), body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) UpdateComment(ctx context.Context, postID, commentID int64, content string) (*model.Comment, error) {
	var comment model.Comment
	body := model.CommentRequest{Content: content}
	if err := c.put(ctx, c.endpoint("posts", id(postID), "comments", id(commentID)), body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, postID, commentID int64) error {
	return c.delete(ctx, c.endpoint("posts", id(postID), "comments", id(commentID)))
}
