package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

const postsCollection = "posts"

type postDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	ImageURL  string             `bson:"imageUrl"`
	Creator   primitive.ObjectID `bson:"creator"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type PostRepository struct {
	posts *mongo.Collection
	users *mongo.Collection
}

func NewPostRepository(db *mongo.Database) repository.PostRepository {
	return &PostRepository{
		posts: db.Collection(postsCollection),
		users: db.Collection(usersCollection),
	}
}

func (r *PostRepository) Init(ctx context.Context) error {
	_, err := r.posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create post index: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (string, error) {
	creator, err := primitive.ObjectIDFromHex(post.CreatorID)
	if err != nil {
		return "", fmt.Errorf("invalid creator id: %w", err)
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	doc := postDoc{
		Title:     post.Title,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		Creator:   creator,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	res, err := r.posts.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID).Hex()
	post.ID = id
	return id, nil
}

func (r *PostRepository) Get(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc postDoc
	if err := r.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	creators, err := r.loadCreators(ctx, []primitive.ObjectID{doc.Creator})
	if err != nil {
		return nil, err
	}
	return postFromDoc(doc, creators), nil
}

// List returns one page of posts ordered newest-first, creators expanded.
func (r *PostRepository) List(ctx context.Context, skip, limit int64) ([]domain.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	var docs []postDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	creatorIDs := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		creatorIDs = append(creatorIDs, doc.Creator)
	}
	creators, err := r.loadCreators(ctx, creatorIDs)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, len(docs))
	for i, doc := range docs {
		posts[i] = *postFromDoc(doc, creators)
	}
	return posts, nil
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.posts.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return total, nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	oid, err := primitive.ObjectIDFromHex(post.ID)
	if err != nil {
		return repository.ErrNotFound
	}

	post.UpdatedAt = time.Now().UTC()
	res, err := r.posts.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{
			"title":     post.Title,
			"content":   post.Content,
			"imageUrl":  post.ImageURL,
			"updatedAt": post.UpdatedAt,
		},
	})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// loadCreators fetches the referenced users in one query keyed by id.
func (r *PostRepository) loadCreators(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.User, error) {
	creators := make(map[primitive.ObjectID]*domain.User, len(ids))
	if len(ids) == 0 {
		return creators, nil
	}

	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("load creators: %w", err)
	}

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode creators: %w", err)
	}
	for _, doc := range docs {
		creators[doc.ID] = userFromDoc(doc)
	}
	return creators, nil
}

func postFromDoc(doc postDoc, creators map[primitive.ObjectID]*domain.User) *domain.Post {
	return &domain.Post{
		ID:        doc.ID.Hex(),
		Title:     doc.Title,
		Content:   doc.Content,
		ImageURL:  doc.ImageURL,
		CreatorID: doc.Creator.Hex(),
		Creator:   creators[doc.Creator],
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
