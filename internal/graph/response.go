package graph

import (
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/service"
)

// Response shapes expose exactly the declared output fields; internal
// storage representation (notably the password hash) never leaks through.

type UserResponse struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Status string   `json:"status"`
	Posts  []string `json:"posts"`
}

type PostResponse struct {
	ID        string        `json:"_id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	ImageURL  string        `json:"imageUrl"`
	Creator   *UserResponse `json:"creator"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type PostsPageResponse struct {
	Posts      []PostResponse `json:"posts"`
	TotalPosts int64          `json:"totalPosts"`
}

func userToResponse(user *domain.User) *UserResponse {
	if user == nil {
		return nil
	}
	posts := user.PostIDs
	if posts == nil {
		posts = []string{}
	}
	return &UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Status: user.Status,
		Posts:  posts,
	}
}

func postToResponse(post *domain.Post) *PostResponse {
	return &PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		Creator:   userToResponse(post.Creator),
		CreatedAt: post.CreatedAt.Format(time.RFC3339),
		UpdatedAt: post.UpdatedAt.Format(time.RFC3339),
	}
}

func pageToResponse(page *service.PostsPage) *PostsPageResponse {
	posts := make([]PostResponse, len(page.Posts))
	for i := range page.Posts {
		posts[i] = *postToResponse(&page.Posts[i])
	}
	return &PostsPageResponse{Posts: posts, TotalPosts: page.TotalPosts}
}
