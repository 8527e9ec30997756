package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/suraj4812010/Videotube/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// verify MongoDB implements database interface in compile time
var _ Database = (*MongoDB)(nil)

const (
	USER_COLL = "users"
)

type MongoDB struct {
	client *mongo.Client
	db     string
}

func NewMongo(conn string, db string) (*MongoDB, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(conn))
	if err != nil {
		return nil, err
	}

	return &MongoDB{client: client, db: db}, nil
}

// Ping verifies the server is reachable.
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoDB) users() *mongo.Collection {
	return m.client.Database(m.db).Collection(USER_COLL)
}

func (m *MongoDB) CreateUser(ctx context.Context, user CreateUser) (models.User, error) {
	now := time.Now().Unix()
	dbuser := models.User{
		ID:        models.NewUserID(),
		CreatedAt: now,
		UpdatedAt: now,
		FullName:  user.FullName,
		Username:  strings.ToLower(strings.TrimSpace(user.Username)),
		Email:     strings.ToLower(strings.TrimSpace(user.Email)),
		Password:  user.PwdHash,
	}

	if _, err := m.users().InsertOne(ctx, dbuser); err != nil {
		return models.User{}, err
	}

	return dbuser, nil
}

func (m *MongoDB) GetUser(ctx context.Context, id models.UserID) (user models.User, err error) {
	opts := options.FindOne().SetProjection(bson.D{
		{Key: "password", Value: 0},
		{Key: "refresh_token", Value: 0},
		{Key: "reset", Value: 0},
	})
	err = m.users().FindOne(ctx, bson.D{{Key: "_id", Value: bson.ObjectID(id)}}, opts).Decode(&user)
	return user, wrapNotFound(err)
}

func (m *MongoDB) FindByID(ctx context.Context, id models.UserID) (user models.User, err error) {
	err = m.users().FindOne(ctx, bson.D{{Key: "_id", Value: bson.ObjectID(id)}}).Decode(&user)
	return user, wrapNotFound(err)
}

func (m *MongoDB) FindByEmail(ctx context.Context, email string) (user models.User, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	err = m.users().FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	return user, wrapNotFound(err)
}

func (m *MongoDB) FindByUsername(ctx context.Context, username string) (user models.User, err error) {
	username = strings.ToLower(strings.TrimSpace(username))
	err = m.users().FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&user)
	return user, wrapNotFound(err)
}

func (m *MongoDB) Exists(ctx context.Context, email, username string) (bool, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "email", Value: strings.ToLower(strings.TrimSpace(email))}},
		bson.D{{Key: "username", Value: strings.ToLower(strings.TrimSpace(username))}},
	}}}

	count, err := m.users().CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (m *MongoDB) SetRefreshToken(ctx context.Context, id models.UserID, token string) error {
	var update bson.D
	if token == "" {
		update = bson.D{
			{Key: "$unset", Value: bson.D{{Key: "refresh_token", Value: ""}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().Unix()}}},
		}
	} else {
		update = bson.D{{Key: "$set", Value: bson.D{
			{Key: "refresh_token", Value: token},
			{Key: "updated_at", Value: time.Now().Unix()},
		}}}
	}

	return m.updateByID(ctx, id, update)
}

func (m *MongoDB) SetPasswordReset(ctx context.Context, id models.UserID, reset *models.PasswordReset) error {
	var update bson.D
	if reset == nil {
		update = bson.D{
			{Key: "$unset", Value: bson.D{{Key: "reset", Value: ""}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().Unix()}}},
		}
	} else {
		update = bson.D{{Key: "$set", Value: bson.D{
			{Key: "reset", Value: reset},
			{Key: "updated_at", Value: time.Now().Unix()},
		}}}
	}

	return m.updateByID(ctx, id, update)
}

func (m *MongoDB) FindByResetToken(ctx context.Context, token string, now time.Time) (user models.User, err error) {
	filter := bson.D{
		{Key: "reset.token", Value: token},
		{Key: "reset.expires_at", Value: bson.D{{Key: "$gt", Value: now}}},
	}
	err = m.users().FindOne(ctx, filter).Decode(&user)
	return user, wrapNotFound(err)
}

// SetPassword writes the new hash and removes both the pending reset
// and the stored refresh token in a single update: consuming a reset
// token and revoking outstanding sessions happen atomically with the
// password change.
func (m *MongoDB) SetPassword(ctx context.Context, id models.UserID, passwordHash string) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "password", Value: passwordHash},
			{Key: "updated_at", Value: time.Now().Unix()},
		}},
		{Key: "$unset", Value: bson.D{
			{Key: "reset", Value: ""},
			{Key: "refresh_token", Value: ""},
		}},
	}

	return m.updateByID(ctx, id, update)
}

func (m *MongoDB) UpdateAccount(ctx context.Context, id models.UserID, acc UpdateAccount) (models.User, error) {
	set := bson.D{{Key: "updated_at", Value: time.Now().Unix()}}
	if acc.FullName != "" {
		set = append(set, bson.E{Key: "full_name", Value: acc.FullName})
	}
	if acc.Email != "" {
		set = append(set, bson.E{Key: "email", Value: strings.ToLower(strings.TrimSpace(acc.Email))})
	}

	if err := m.updateByID(ctx, id, bson.D{{Key: "$set", Value: set}}); err != nil {
		return models.User{}, err
	}

	return m.GetUser(ctx, id)
}

func (m *MongoDB) updateByID(ctx context.Context, id models.UserID, update bson.D) error {
	result, err := m.users().UpdateOne(ctx, bson.D{{Key: "_id", Value: bson.ObjectID(id)}}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func wrapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
