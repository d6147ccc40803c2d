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

const usersCollection = "users"

type userDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Email     string               `bson:"email"`
	Name      string               `bson:"name"`
	Password  string               `bson:"password"`
	Status    string               `bson:"status"`
	Posts     []primitive.ObjectID `bson:"posts"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

// Init ensures the unique email index backing the uniqueness invariant.
// The pre-check in the register operation stays; the index settles races.
func (r *UserRepository) Init(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	doc := userDoc{
		Email:     user.Email,
		Name:      user.Name,
		Password:  user.PasswordHash,
		Status:    user.Status,
		Posts:     []primitive.ObjectID{},
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID).Hex()
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) AddPost(ctx context.Context, userID, postID string) error {
	return r.updatePosts(ctx, userID, postID, "$push")
}

func (r *UserRepository) RemovePost(ctx context.Context, userID, postID string) error {
	return r.updatePosts(ctx, userID, postID, "$pull")
}

func (r *UserRepository) updatePosts(ctx context.Context, userID, postID, op string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.col.UpdateByID(ctx, uid, bson.M{
		op:     bson.M{"posts": pid},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("update user posts: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return userFromDoc(doc), nil
}

func userFromDoc(doc userDoc) *domain.User {
	postIDs := make([]string, len(doc.Posts))
	for i, id := range doc.Posts {
		postIDs[i] = id.Hex()
	}
	return &domain.User{
		ID:           doc.ID.Hex(),
		Email:        doc.Email,
		Name:         doc.Name,
		PasswordHash: doc.Password,
		Status:       doc.Status,
		PostIDs:      postIDs,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
