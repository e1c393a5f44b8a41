package api

import (
	"context"

	"github.com/jrsteele09/skillshare-client/model"
)

type PostPage = model.Page[model.Post]

// Posts lists every post, newest first. A zero size uses the client default.
func (c *Client) Posts(ctx context.Context, page, size int) (*PostPage, error) {
	u := c.endpoint("posts")
	u.RawQuery = c.pageQuery(page, size).Encode()

	var p PostPage
	if err := c.get(ctx, u, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FeedPosts lists posts from followed users.
func (c *Client) FeedPosts(ctx context.Context, page, size int) (*PostPage, error) {
	u := c.endpoint("posts", "feed")
	u.RawQuery = c.pageQuery(page, size).Encode()

	var p PostPage
	if err := c.get(ctx, u, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UserPosts(ctx context.Context, userID int64, page, size int) (*PostPage, error) {
	u := c.endpoint("posts", "user", id(userID))
	u.RawQuery = c.pageQuery(page, size).Encode()

	var p PostPage
	if err := c.get(ctx, u, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Post(ctx context.Context, postID int64) (*model.Post, error) {
	var p model.Post
	if err := c.get(ctx, c.endpoint("posts", id(postID)), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreatePost(ctx context.Context, req model.PostRequest) (*model.Post, error) {
	if req.Type == "" {
		req.Type = model.PostTypeRegular
	}
	var p model.Post
	if err := c.post(ctx, c.endpoint("posts"), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdatePost(ctx context.Context, postID int64, req model.PostRequest) (*model.Post, error) {
	var p model.Post
	if err := c.put(ctx, c.endpoint("posts", id(postID)), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePost(ctx context.Context, postID int64) error {
	return c.delete(ctx, c.endpoint("posts", id(postID)))
}
