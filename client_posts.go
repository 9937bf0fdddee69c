package goscribe

import (
	"context"
	"errors"
	"fmt"
	"sort"

	internalevents "github.com/scribeworks/goscribe/internal/events"
	"github.com/scribeworks/goscribe/rest"
)

// MyPosts describes the myposts operation and its observable behavior.
//
// MyPosts may return an error when input validation, dependency calls, or security checks fail.
// MyPosts does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The backend has no per-user listing endpoint; ownership filtering happens
// client-side over the full collection.
func (c *Client) MyPosts(ctx context.Context) ([]Post, error) {
	snap := c.store.Snapshot()
	if snap.User == nil {
		return nil, ErrNotLoggedIn
	}

	all, err := c.posts.List(ctx)
	if err != nil {
		c.recoverOnUnauthorized(err)
		return nil, fmt.Errorf("list posts: %w", err)
	}

	mine := make([]Post, 0, len(all))
	for _, p := range all {
		if p.UserID == snap.User.ID {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

// RecentPosts returns the n newest posts across all authors, newest first.
// n <= 0 returns the full collection.
func (c *Client) RecentPosts(ctx context.Context, n int) ([]Post, error) {
	all, err := c.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if n > 0 && n < len(all) {
		all = all[:n]
	}
	return all, nil
}

// Post describes the post operation and its observable behavior.
//
// Post may return an error when input validation, dependency calls, or security checks fail.
// Post does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Fetching a post the session user does not own fails with
// [ErrUnauthorizedAccess] even though the backend would serve it.
func (c *Client) Post(ctx context.Context, id string) (Post, error) {
	p, err := c.posts.Get(ctx, id)
	if err != nil {
		c.recoverOnUnauthorized(err)
		return Post{}, fmt.Errorf("fetch post: %w", err)
	}

	snap := c.store.Snapshot()
	if snap.User == nil || p.UserID != snap.User.ID {
		c.metrics.Inc(MetricUnauthorizedPostAccess)
		return Post{}, ErrUnauthorizedAccess
	}

	return p, nil
}

// CreatePost describes the createpost operation and its observable behavior.
//
// CreatePost may return an error when input validation, dependency calls, or security checks fail.
// CreatePost does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CreatePost(ctx context.Context, in PostInput) (Post, error) {
	if err := validatePostInput(in); err != nil {
		return Post{}, err
	}

	snap := c.store.Snapshot()
	if snap.User == nil {
		return Post{}, ErrNotLoggedIn
	}

	created, err := c.posts.Create(ctx, rest.NewPost{
		UserID:   snap.User.ID,
		Title:    in.Title,
		Content:  in.Content,
		Sections: in.Sections,
		Image:    in.Image,
	})
	if err != nil {
		c.recoverOnUnauthorized(err)
		return Post{}, fmt.Errorf("create post: %w", err)
	}

	return created, nil
}

// UpdatePost describes the updatepost operation and its observable behavior.
//
// UpdatePost may return an error when input validation, dependency calls, or security checks fail.
// UpdatePost does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Only title and content reach the backend. The returned post carries the
// sections the post had before the edit; section edits made in the input are
// not persisted. This mirrors the backend's update contract.
func (c *Client) UpdatePost(ctx context.Context, id string, in PostInput) (Post, error) {
	if err := validatePostInput(in); err != nil {
		return Post{}, err
	}

	current, err := c.Post(ctx, id)
	if err != nil {
		return Post{}, err
	}

	updated, err := c.posts.Update(ctx, id, rest.PostPatch{
		Title:   in.Title,
		Content: in.Content,
	})
	if err != nil {
		c.recoverOnUnauthorized(err)
		return Post{}, fmt.Errorf("update post: %w", err)
	}

	// The update response omits sections; carry the pre-edit ones forward.
	updated.Sections = current.Sections

	return updated, nil
}

// DeletePost describes the deletepost operation and its observable behavior.
//
// DeletePost may return an error when input validation, dependency calls, or security checks fail.
// DeletePost does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A failed delete is retried exactly once. When both attempts fail the error
// wraps [ErrDeleteRetriesExhausted] alongside the final cause.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	err := c.posts.Delete(ctx, id)
	if err == nil {
		return nil
	}

	c.metrics.Inc(MetricPostDeleteRetry)
	c.dispatcher.Emit(Event{Type: internalevents.TypePostDeleteRetry, Path: "/posts/" + id, Error: err.Error()})

	err = c.posts.Delete(ctx, id)
	if err == nil {
		return nil
	}

	c.recoverOnUnauthorized(err)
	return errors.Join(ErrDeleteRetriesExhausted, err)
}
