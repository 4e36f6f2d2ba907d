package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"github.com/ArowuTest/mystery-message-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for User
type UserRepository struct {
	collection *mongo.Collection
	opTimeout  time.Duration
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// WithOpTimeout bounds every store call by d; zero leaves the caller's context as is
func (r *UserRepository) WithOpTimeout(d time.Duration) *UserRepository {
	r.opTimeout = d
	return r
}

func (r *UserRepository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opTimeout)
}

// EnsureIndexes creates the unique username and email indexes
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Messages == nil {
		user.Messages = []models.Message{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByUsername finds a user by exact username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindVerifiedByUsername finds a verified user by username
func (r *UserRepository) FindVerifiedByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username, "isVerified": true})
}

// Update writes the account fields of an existing user.
// messages and isAcceptingMessages have dedicated atomic operations and are left alone.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	user.UpdatedAt = time.Now()
	filter := bson.M{"_id": user.ID}
	update := bson.M{"$set": bson.M{
		"username":         user.Username,
		"email":            user.Email,
		"password":         user.Password,
		"verifyCode":       user.VerifyCode,
		"verifyCodeExpiry": user.VerifyCodeExpiry,
		"isVerified":       user.IsVerified,
		"updatedAt":        user.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		return fmt.Errorf("update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// MarkVerified flags the account as verified
func (r *UserRepository) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"isVerified": true, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// SetAcceptingMessages atomically sets isAcceptingMessages and returns the updated user
func (r *UserRepository) SetAcceptingMessages(ctx context.Context, id primitive.ObjectID, accepting bool) (*models.User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var user models.User
	update := bson.M{"$set": bson.M{"isAcceptingMessages": accepting, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("set accepting messages: %w", err)
	}
	return &user, nil
}

// AppendMessageIfAccepting pushes msg in a single conditional update, so a
// recipient that stops accepting between lookup and write never gets the message
func (r *UserRepository) AppendMessageIfAccepting(ctx context.Context, username string, msg models.Message) (bool, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	filter := bson.M{"username": username, "isAcceptingMessages": true}
	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("append message: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// FindMessagesSorted returns the user's messages ordered by createdAt descending.
// A missing user and an empty inbox both yield an empty slice.
func (r *UserRepository) FindMessagesSorted(ctx context.Context, id primitive.ObjectID) ([]models.Message, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$unwind", Value: "$messages"}},
		{{Key: "$sort", Value: bson.D{{Key: "messages.createdAt", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id"},
			{Key: "messages", Value: bson.D{{Key: "$push", Value: "$messages"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate messages: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Messages []models.Message `bson:"messages"`
	}
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	if len(groups) == 0 || groups[0].Messages == nil {
		return []models.Message{}, nil
	}
	return groups[0].Messages, nil
}

// DeleteMessage removes one embedded message owned by userID
func (r *UserRepository) DeleteMessage(ctx context.Context, userID, messageID primitive.ObjectID) (bool, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	filter := bson.M{"_id": userID, "messages._id": messageID}
	update := bson.M{
		"$pull": bson.M{"messages": bson.M{"_id": messageID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("delete message: %w", err)
	}
	return result.ModifiedCount > 0, nil
}
