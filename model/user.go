package model

// UserSummary is returned by GET /users/me.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// User is a public profile.
type User struct {
	ID             int64    `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email,omitempty"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	CreatedAt      DateTime `json:"createdAt"`
	FollowerCount  int      `json:"followersCount,omitempty"`
	FollowingCount int      `json:"followingCount,omitempty"`
}

// ProfileUpdate is the body of PUT /users/me. Empty fields are left unchanged.
type ProfileUpdate struct {
	ID              int64  `json:"id,omitempty"`
	Username        string `json:"username,omitempty"`
	Email           string `json:"email,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
	Bio             string `json:"bio,omitempty"`
	ProfilePicture  string `json:"profilePicture,omitempty"`
}
