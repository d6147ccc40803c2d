package graph

import (
	"github.com/graphql-go/graphql"

	"blog-api/internal/apperr"
	"blog-api/internal/auth"
	"blog-api/internal/service"
)

type resolver struct {
	users service.UserService
	posts service.PostService
}

// requireAuth enforces what the middleware only annotates.
func requireAuth(p graphql.ResolveParams) (auth.Context, error) {
	ac := auth.FromContext(p.Context)
	if !ac.Authenticated {
		return ac, apperr.Authentication("not authenticated")
	}
	return ac, nil
}

func (r *resolver) createUser(p graphql.ResolveParams) (interface{}, error) {
	input := inputArg(p.Args, "userInput")
	user, err := r.users.Register(p.Context,
		stringField(input, "email"),
		stringField(input, "password"),
		stringField(input, "name"),
	)
	if err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func (r *resolver) login(p graphql.ResolveParams) (interface{}, error) {
	payload, err := r.users.Login(p.Context,
		stringArg(p.Args, "email"),
		stringArg(p.Args, "password"),
	)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: payload.Token, UserID: payload.UserID}, nil
}

func (r *resolver) createPost(p graphql.ResolveParams) (interface{}, error) {
	ac, err := requireAuth(p)
	if err != nil {
		return nil, err
	}

	post, err := r.posts.Create(p.Context, ac.UserID, postInputArg(p.Args))
	if err != nil {
		return nil, err
	}
	return postToResponse(post), nil
}

func (r *resolver) listPosts(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireAuth(p); err != nil {
		return nil, err
	}

	page := 1
	if v, ok := p.Args["page"].(int); ok {
		page = v
	}

	result, err := r.posts.List(p.Context, page)
	if err != nil {
		return nil, err
	}
	return pageToResponse(result), nil
}

func (r *resolver) post(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireAuth(p); err != nil {
		return nil, err
	}

	post, err := r.posts.Get(p.Context, stringArg(p.Args, "id"))
	if err != nil {
		return nil, err
	}
	return postToResponse(post), nil
}

func (r *resolver) updatePost(p graphql.ResolveParams) (interface{}, error) {
	ac, err := requireAuth(p)
	if err != nil {
		return nil, err
	}

	post, err := r.posts.Update(p.Context, ac.UserID, stringArg(p.Args, "id"), postInputArg(p.Args))
	if err != nil {
		return nil, err
	}
	return postToResponse(post), nil
}

func (r *resolver) deletePost(p graphql.ResolveParams) (interface{}, error) {
	ac, err := requireAuth(p)
	if err != nil {
		return nil, err
	}
	return r.posts.Delete(p.Context, ac.UserID, stringArg(p.Args, "id"))
}

func (r *resolver) user(p graphql.ResolveParams) (interface{}, error) {
	ac, err := requireAuth(p)
	if err != nil {
		return nil, err
	}

	user, err := r.users.GetByID(p.Context, ac.UserID)
	if err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func (r *resolver) updateStatus(p graphql.ResolveParams) (interface{}, error) {
	ac, err := requireAuth(p)
	if err != nil {
		return nil, err
	}

	user, err := r.users.UpdateStatus(p.Context, ac.UserID, stringArg(p.Args, "status"))
	if err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func postInputArg(args map[string]interface{}) service.PostInput {
	input := inputArg(args, "postInput")
	return service.PostInput{
		Title:    stringField(input, "title"),
		Content:  stringField(input, "content"),
		ImageURL: stringField(input, "imageUrl"),
	}
}

func inputArg(args map[string]interface{}, key string) map[string]interface{} {
	input, _ := args[key].(map[string]interface{})
	return input
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func stringField(input map[string]interface{}, key string) string {
	s, _ := input[key].(string)
	return s
}
