package api

import "context"

func (c *Client) LikeCount(ctx context.Context, postID int64) (int64, error) {
	var n int64
	if err := c.get(ctx, c.endpoint("posts", id(postID), "likes", "count"), &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *Client) HasLiked(ctx context.Context, postID int64) (bool, error) {
	var liked bool
	if err := c.get(ctx, c.endpoint("posts", id(postID), "likes", "status"), &liked); err != nil {
		return false, err
	}
	return liked, nil
}

// ToggleLike likes the post, or removes the like if it is already there.
func (c *Client) ToggleLike(ctx context.Context, postID int64) error {
	return c.post(ctx, c.endpoint("posts", id(postID), "likes"), nil, nil)
}
