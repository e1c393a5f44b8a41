package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jrsteele09/skillshare-client/api"
	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/model"
	"golang.org/x/sync/errgroup"
)

func feedCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "feed")
	page := fs.Int("page", 0, "page number, from 0")
	size := fs.Int("size", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := a.client.FeedPosts(ctx, *page, *size)
	if err != nil {
		return err
	}
	printPosts(a.out, p)
	return nil
}

func postsCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "posts")
	userID := fs.Int64("user", 0, "only posts by this user id")
	page := fs.Int("page", 0, "page number, from 0")
	size := fs.Int("size", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		p   *api.PostPage
		err error
	)
	if *userID > 0 {
		p, err = a.client.UserPosts(ctx, *userID, *page, *size)
	} else {
		p, err = a.client.Posts(ctx, *page, *size)
	}
	if err != nil {
		return err
	}
	printPosts(a.out, p)
	return nil
}

// postCmd: post <id> | post -new "content" | post -edit <id> "content" |
// post -delete <id>
func postCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "post")
	content := fs.String("new", "", "create a post with this content")
	question := fs.Bool("question", false, "mark the new post as a question")
	editID := fs.Int64("edit", 0, "replace the content of the post with this id")
	deleteID := fs.Int64("delete", 0, "delete the post with this id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *content != "":
		req := model.PostRequest{Content: *content, Type: model.PostTypeRegular}
		if *question {
			req.Type = model.PostTypeQuestion
		}
		p, err := a.client.CreatePost(ctx, req)
		if err != nil {
			return err
		}
		a.printf("Created post %d\n", p.ID)
		return nil
	case *editID > 0:
		if fs.NArg() == 0 {
			return fmt.Errorf("%w: usage: skillshare post -edit <id> <content>", apperrors.ErrInvalidRequest)
		}
		current, err := a.client.Post(ctx, *editID)
		if err != nil {
			return err
		}
		p, err := a.client.UpdatePost(ctx, *editID, model.PostRequest{
			Content: strings.Join(fs.Args(), " "),
			Type:    current.Type,
		})
		if err != nil {
			return err
		}
		a.printf("Updated post %d\n", p.ID)
		return nil
	case *deleteID > 0:
		if err := a.client.DeletePost(ctx, *deleteID); err != nil {
			return err
		}
		a.printf("Deleted post %d\n", *deleteID)
		return nil
	case fs.NArg() == 1:
		id, err := parseID(fs.Arg(0), "post id")
		if err != nil {
			return err
		}
		return showPost(ctx, a, id)
	default:
		return fmt.Errorf("%w: usage: skillshare post <id> | -new <content> | -edit <id> <content> | -delete <id>", apperrors.ErrInvalidRequest)
	}
}

// showPost fetches the post, its comments and like state together.
func showPost(ctx context.Context, a *app, id int64) error {
	var (
		post     *model.Post
		comments []model.Comment
		likes    int64
		liked    bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		post, err = a.client.Post(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		comments, err = a.client.Comments(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		likes, err = a.client.LikeCount(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		liked, err = a.client.HasLiked(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	printPost(a.out, post)
	mark := ""
	if liked {
		mark = " (you like this)"
	}
	a.printf("  %d likes%s, %d comments\n", likes, mark, len(comments))
	for _, c := range comments {
		author := "?"
		if c.User != nil {
			author = c.User.Username
		}
		a.printf("    %s: %s\n", author, c.Content)
	}
	return nil
}

func commentCmd(ctx context.Context, a *app, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: usage: skillshare comment <post id> <text>", apperrors.ErrInvalidRequest)
	}
	postID, err := parseID(args[0], "post id")
	if err != nil {
		return err
	}
	c, err := a.client.CreateComment(ctx, postID, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	a.printf("Added comment %d to post %d\n", c.ID, postID)
	return nil
}

func likeCmd(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: skillshare like <post id>", apperrors.ErrInvalidRequest)
	}
	postID, err := parseID(args[0], "post id")
	if err != nil {
		return err
	}
	if err := a.client.ToggleLike(ctx, postID); err != nil {
		return err
	}

	liked, err := a.client.HasLiked(ctx, postID)
	if err != nil {
		return err
	}
	count, err := a.client.LikeCount(ctx, postID)
	if err != nil {
		return err
	}
	verb := "Unliked"
	if liked {
		verb = "Liked"
	}
	a.printf("%s post %d (%d likes)\n", verb, postID, count)
	return nil
}

func followCmd(follow bool) func(context.Context, *app, []string) error {
	return func(ctx context.Context, a *app, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: a user id is required", apperrors.ErrInvalidRequest)
		}
		userID, err := parseID(args[0], "user id")
		if err != nil {
			return err
		}
		if follow {
			err = a.client.Follow(ctx, userID)
		} else {
			err = a.client.Unfollow(ctx, userID)
		}
		if err != nil {
			return err
		}
		if follow {
			a.printf("Following user %d\n", userID)
		} else {
			a.printf("Unfollowed user %d\n", userID)
		}
		return nil
	}
}

// plansCmd: plans [-user <id> | -mine] | plans <id> | plans -step <n> <id> |
// plans -new <title> [-steps "a,b"]
func plansCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "plans")
	userID := fs.Int64("user", 0, "only plans by this user id")
	mine := fs.Bool("mine", false, "only your own plans")
	step := fs.Int("step", 0, "toggle completion of this step (from 1) on the given plan")
	title := fs.String("new", "", "create a plan with this title")
	description := fs.String("desc", "", "description of the new plan")
	steps := fs.String("steps", "", "comma separated step titles of the new plan")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *title != "" {
		req := model.LearningPlanRequest{Title: *title, Description: *description}
		for _, st := range strings.Split(*steps, ",") {
			if st = strings.TrimSpace(st); st != "" {
				req.Steps = append(req.Steps, model.LearningStepRequest{Title: st})
			}
		}
		plan, err := a.client.CreateLearningPlan(ctx, req)
		if err != nil {
			return err
		}
		a.printf("Created learning plan %d\n", plan.ID)
		return nil
	}

	if fs.NArg() == 1 {
		id, err := parseID(fs.Arg(0), "plan id")
		if err != nil {
			return err
		}
		plan, err := a.client.LearningPlan(ctx, id)
		if err != nil {
			return err
		}
		if *step != 0 {
			if plan, err = toggleStep(ctx, a, plan, *step); err != nil {
				return err
			}
		}
		printPlan(a.out, plan, true)
		return nil
	}
	if *step != 0 {
		return fmt.Errorf("%w: usage: skillshare plans -step <n> <plan id>", apperrors.ErrInvalidRequest)
	}

	if *mine {
		id, err := a.currentUserID(ctx)
		if err != nil {
			return err
		}
		*userID = id
	}

	var (
		plans []model.LearningPlan
		err   error
	)
	if *userID > 0 {
		plans, err = a.client.UserLearningPlans(ctx, *userID)
	} else {
		plans, err = a.client.LearningPlans(ctx)
	}
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		a.printf("No learning plans\n")
	}
	for i := range plans {
		printPlan(a.out, &plans[i], false)
	}
	return nil
}

// toggleStep flips one step and saves the whole plan, which is how the API
// records progress.
func toggleStep(ctx context.Context, a *app, plan *model.LearningPlan, n int) (*model.LearningPlan, error) {
	if n < 1 || n > len(plan.Steps) {
		return nil, fmt.Errorf("%w: plan %d has %d steps, got step %d", apperrors.ErrInvalidRequest, plan.ID, len(plan.Steps), n)
	}
	plan.Steps[n-1].Completed = !plan.Steps[n-1].Completed
	updated, err := a.client.UpdateLearningPlan(ctx, plan.ID, model.RequestFrom(plan))
	if err != nil {
		return nil, err
	}
	a.printf("Progress: %d%%\n", updated.Progress())
	return updated, nil
}

// profileCmd: profile <username> | profile -bio <text> [-picture <url>]
func profileCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "profile")
	bio := fs.String("bio", "", "set your bio")
	picture := fs.String("picture", "", "set your profile picture url")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *bio != "" || *picture != "" {
		u, err := a.client.UpdateProfile(ctx, model.ProfileUpdate{Bio: *bio, ProfilePicture: *picture})
		if err != nil {
			return err
		}
		a.printf("Updated profile of %s\n", u.Username)
		printUser(a.out, u)
		return nil
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: usage: skillshare profile <username> | -bio <text>", apperrors.ErrInvalidRequest)
	}
	u, err := a.client.UserProfile(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	printUser(a.out, u)
	return nil
}

// dashboardCmd loads profile, feed and plans concurrently; the first failure
// cancels the rest.
func dashboardCmd(ctx context.Context, a *app, _ []string) error {
	userID, err := a.currentUserID(ctx)
	if err != nil {
		return err
	}

	var (
		me    *model.UserSummary
		feed  *api.PostPage
		plans []model.LearningPlan
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		me, err = a.client.CurrentUser(gctx)
		return err
	})
	g.Go(func() (err error) {
		feed, err = a.client.FeedPosts(gctx, 0, 0)
		return err
	})
	g.Go(func() (err error) {
		plans, err = a.client.UserLearningPlans(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	a.printf("Welcome back, %s\n\n", me.Username)
	a.printf("Feed\n")
	printPosts(a.out, feed)
	a.printf("\nYour learning plans\n")
	if len(plans) == 0 {
		a.printf("  none yet\n")
	}
	for i := range plans {
		printPlan(a.out, &plans[i], false)
	}
	return nil
}

func (a *app) currentUserID(ctx context.Context) (int64, error) {
	s, ok := a.sessions.CurrentSession(ctx)
	if !ok {
		return 0, apperrors.ErrNoSession
	}
	id, err := strconv.ParseInt(s.UserID, 10, 64)
	if err != nil {
		return 0, apperrors.Wrapf(apperrors.ErrMalformedToken, "user id %q", s.UserID)
	}
	return id, nil
}

func printPosts(w io.Writer, p *api.PostPage) {
	if len(p.Content) == 0 {
		fmt.Fprintln(w, "  no posts")
		return
	}
	for i := range p.Content {
		printPost(w, &p.Content[i])
	}
	if p.HasMore() {
		fmt.Fprintf(w, "  ... more on page %d\n", p.Number+1)
	}
}

func printPost(w io.Writer, p *model.Post) {
	kind := ""
	if p.Type != "" && p.Type != model.PostTypeRegular {
		kind = " [" + strings.ToLower(strings.ReplaceAll(string(p.Type), "_", " ")) + "]"
	}
	when := ""
	if !p.CreatedAt.IsZero() {
		when = " " + p.CreatedAt.Format("2006-01-02 15:04")
	}
	fmt.Fprintf(w, "#%d %s%s%s\n", p.ID, p.AuthorName(), kind, when)
	fmt.Fprintf(w, "  %s\n", p.Content)
}

func printPlan(w io.Writer, p *model.LearningPlan, withSteps bool) {
	fmt.Fprintf(w, "#%d %s (%d%% complete)\n", p.ID, p.Title, p.Progress())
	if !withSteps {
		return
	}
	if p.Description != "" {
		fmt.Fprintf(w, "  %s\n", p.Description)
	}
	for _, s := range p.Steps {
		box := "[ ]"
		if s.Completed {
			box = "[x]"
		}
		fmt.Fprintf(w, "  %s %s\n", box, s.Title)
	}
}

func printUser(w io.Writer, u *model.User) {
	fmt.Fprintf(w, "#%d %s\n", u.ID, u.Username)
	if u.Bio != "" {
		fmt.Fprintf(w, "  %s\n", u.Bio)
	}
	fmt.Fprintf(w, "  %d followers, %d following\n", u.FollowerCount, u.FollowingCount)
}
