package user

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the repository layer in rendered output.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Username     string        `bson:"username"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	CreatedAt    time.Time     `bson:"created_at"`
}
