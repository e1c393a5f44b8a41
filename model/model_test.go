package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jrsteele09/skillshare-client/model"
	"github.com/stretchr/testify/require"
)

func TestDateTime_Unmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{in: `"2025-03-01T12:30:00"`, want: time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)},
		{in: `"2025-03-01T12:30:00.123456"`, want: time.Date(2025, 3, 1, 12, 30, 0, 123456000, time.UTC)},
		{in: `"2025-03-01T12:30:00Z"`, want: time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)},
		{in: `null`, want: time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var d model.DateTime
			require.NoError(t, json.Unmarshal([]byte(tc.in), &d))
			require.True(t, tc.want.Equal(d.Time), "got %s", d.Time)
		})
	}

	var d model.DateTime
	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
}

func TestLearningPlan_Progress(t *testing.T) {
	plan := model.LearningPlan{}
	require.Equal(t, 0, plan.Progress())

	plan.Steps = []model.LearningStep{{Completed: true}, {Completed: false}, {Completed: false}}
	require.Equal(t, 33, plan.Progress())

	plan.Steps[1].Completed = true
	require.Equal(t, 67, plan.Progress())

	plan.Steps[2].Completed = true
	require.Equal(t, 100, plan.Progress())
}

func TestPost_Author(t *testing.T) {
	p := model.Post{UserID: 5, UserName: "Jane Doe"}
	require.Equal(t, int64(5), p.AuthorID())
	require.Equal(t, "Jane Doe", p.AuthorName())

	p.User = &model.User{ID: 9, Username: "jane"}
	require.Equal(t, int64(9), p.AuthorID())
	require.Equal(t, "jane", p.AuthorName())
}

func TestAuthResponse_BearerToken(t *testing.T) {
	require.Equal(t, "a", model.AuthResponse{AccessToken: "a", Token: "b"}.BearerToken())
	require.Equal(t, "b", model.AuthResponse{Token: "b"}.BearerToken())
	require.Empty(t, model.AuthResponse{}.BearerToken())
}

func TestPage_HasMore(t *testing.T) {
	var p model.Page[model.Post]
	require.NoError(t, json.Unmarshal([]byte(`{"content":[{"id":1,"content":"hi"}],"last":false,"number":0,"size":10}`), &p))
	require.Len(t, p.Content, 1)
	require.True(t, p.HasMore())
}
