package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the account record. Password, RefreshToken and Reset are never
// serialized into responses; the stored RefreshToken value is the single
// source of truth for refresh-token validity.
type User struct {
	ID        UserID `json:"id" bson:"_id"`
	CreatedAt int64  `json:"-" bson:"created_at"`
	UpdatedAt int64  `json:"-" bson:"updated_at"`

	FullName string `json:"fullName" bson:"full_name"`
	Username string `json:"username" bson:"username"`
	Email    string `json:"email" bson:"email"`

	Password     string         `json:"-" bson:"password"`
	RefreshToken string         `json:"-" bson:"refresh_token,omitempty"`
	Reset        *PasswordReset `json:"-" bson:"reset,omitempty"`
}

// PasswordReset is the pending password-reset state. A nil pointer on the
// user means no reset is pending; at most one reset is pending at a time.
type PasswordReset struct {
	Token     string    `bson:"token"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// Active reports whether the pending reset is still inside its window.
func (r *PasswordReset) Active(now time.Time) bool {
	return r != nil && now.Before(r.ExpiresAt)
}

type UserID bson.ObjectID

func ParseUserID(id string) (UserID, error) {
	uid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return UserID{}, err
	}

	return UserID(uid), nil
}

func NewUserID() UserID {
	return UserID(bson.NewObjectID())
}

func (id UserID) String() string {
	return bson.ObjectID(id).Hex()
}

func (id UserID) IsZero() bool {
	return bson.ObjectID(id).IsZero()
}

// MarshalBSONValue stores the ID as a real ObjectID rather than a plain
// byte array, so documents stay queryable by bson.ObjectID.
func (id UserID) MarshalBSONValue() (byte, []byte, error) {
	t, data, err := bson.MarshalValue(bson.ObjectID(id))
	return byte(t), data, err
}

func (id *UserID) UnmarshalBSONValue(t byte, data []byte) error {
	var oid bson.ObjectID
	if err := bson.UnmarshalValue(bson.Type(t), data, &oid); err != nil {
		return err
	}
	*id = UserID(oid)
	return nil
}

// MarshalJSON renders the ID in its hex form, the format clients send
// back in path and body parameters.
func (id UserID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

func (id *UserID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	uid, err := ParseUserID(s)
	if err != nil {
		return err
	}
	*id = uid
	return nil
}
