package model

type PostType string

const (
	PostTypeRegular      PostType = "REGULAR"
	PostTypeQuestion     PostType = "QUESTION"
	PostTypeLearningPlan PostType = "LEARNING_PLAN"
)

type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

type Media struct {
	ID   int64     `json:"id,omitempty"`
	URL  string    `json:"url"`
	Type MediaType `json:"type,omitempty"`
}

type Post struct {
	ID                 int64         `json:"id"`
	Content            string        `json:"content"`
	Type               PostType      `json:"type,omitempty"`
	Media              []Media       `json:"media,omitempty"`
	MediaURLs          []string      `json:"mediaUrls,omitempty"`
	User               *User         `json:"user,omitempty"`
	UserID             int64         `json:"userId,omitempty"`
	UserName           string        `json:"userName,omitempty"`
	Username           string        `json:"username,omitempty"`
	UserProfilePicture string        `json:"userProfilePicture,omitempty"`
	LearningPlan       *LearningPlan `json:"learningPlan,omitempty"`
	LikeCount          int64         `json:"likeCount,omitempty"`
	CommentCount       int64         `json:"commentCount,omitempty"`
	CreatedAt          DateTime      `json:"createdAt"`
	UpdatedAt          DateTime      `json:"updatedAt"`
}

// AuthorID returns the author's id from whichever field the server used.
func (p *Post) AuthorID() int64 {
	if p.User != nil && p.User.ID != 0 {
		return p.User.ID
	}
	return p.UserID
}

// AuthorName returns the author's username from whichever field the server used.
func (p *Post) AuthorName() string {
	switch {
	case p.User != nil && p.User.Username != "":
		return p.User.Username
	case p.Username != "":
		return p.Username
	default:
		return p.UserName
	}
}

// PostRequest creates or updates a post.
type PostRequest struct {
	Content      string               `json:"content"`
	Type         PostType             `json:"type"`
	Media        []Media              `json:"media,omitempty"`
	MediaURLs    []string             `json:"mediaUrls,omitempty"`
	LearningPlan *LearningPlanRequest `json:"learningPlan,omitempty"`
}

// Page is a Spring Data page of results.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Last          bool  `json:"last"`
	First         bool  `json:"first"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// HasMore reports whether another page follows this one.
func (p *Page[T]) HasMore() bool {
	return !p.Last
}
