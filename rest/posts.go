package rest

import (
	"context"
	"net/http"
	"time"
)

// Section is one block of a post's body.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Post is the backend's post resource. UserID is the owner and the client-side
// authorization key.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Sections  []Section `json:"sections"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewPost is the creation payload.
type NewPost struct {
	UserID   string    `json:"userId"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Sections []Section `json:"sections"`
	Image    string    `json:"image,omitempty"`
}

// PostPatch is the update payload. The backend only accepts title and content;
// sections are not part of the wire contract.
type PostPatch struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostClient binds the backend's post endpoints. Every call is authenticated by
// the transport pipeline.
type PostClient struct {
	rest *Client
}

// NewPostClient describes the newpostclient operation and its observable behavior.
//
// NewPostClient may return an error when input validation, dependency calls, or security checks fail.
// NewPostClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewPostClient(rest *Client) *PostClient {
	return &PostClient{rest: rest}
}

// List describes the list operation and its observable behavior.
//
// List may return an error when input validation, dependency calls, or security checks fail.
// List does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p *PostClient) List(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := p.rest.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p *PostClient) Get(ctx context.Context, id string) (Post, error) {
	var post Post
	if err := p.rest.do(ctx, http.MethodGet, "/posts/"+id, nil, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// Create describes the create operation and its observable behavior.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
// Create does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p *PostClient) Create(ctx context.Context, post NewPost) (Post, error) {
	var created Post
	if err := p.rest.do(ctx, http.MethodPost, "/posts", post, &created); err != nil {
		return Post{}, err
	}
	return created, nil
}

// Update sends only title and content. Section changes never reach the backend.
func (p *PostClient) Update(ctx context.Context, id string, patch PostPatch) (Post, error) {
	var updated Post
	if err := p.rest.do(ctx, http.MethodPut, "/posts/"+id, patch, &updated); err != nil {
		return Post{}, err
	}
	return updated, nil
}

// Delete describes the delete operation and its observable behavior.
//
// Delete may return an error when input validation, dependency calls, or security checks fail.
// Delete does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p *PostClient) Delete(ctx context.Context, id string) error {
	return p.rest.do(ctx, http.MethodDelete, "/posts/"+id, nil, nil)
}
