package api

import (
	"context"
	"net/url"

	"github.com/jrsteele09/skillshare-client/model"
)

func (c *Client) CurrentUser(ctx context.Context) (*model.UserSummary, error) {
	var u model.UserSummary
	if err := c.get(ctx, c.endpoint("users", "me"), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UserProfile(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := c.get(ctx, c.endpoint("users", url.PathEscape(username)), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.User, error) {
	var u model.User
	if err := c.put(ctx, c.endpoint("users", "me"), update, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Follow(ctx context.Context, userID int64) error {
	return c.post(ctx, c.endpoint("users", id(userID), "follow"), nil, nil)
}

func (c *Client) Unfollow(ctx context.Context, userID int64) error {
	return c.post(ctx, c.endpoint("users", id(userID), "unfollow"), nil, nil)
}
