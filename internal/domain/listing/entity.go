package listing

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Listing is a rental property posting.
type Listing struct {
	ID          bson.ObjectID   `bson:"_id,omitempty"`
	Title       string          `bson:"title"`
	Description string          `bson:"description"`
	ImageURL    string          `bson:"image_url,omitempty"`
	Price       int64           `bson:"price"`
	Location    string          `bson:"location"`
	Country     string          `bson:"country"`
	OwnerID     bson.ObjectID   `bson:"owner_id"`
	ReviewIDs   []bson.ObjectID `bson:"review_ids,omitempty"`
	CreatedAt   time.Time       `bson:"created_at"`
	UpdatedAt   time.Time       `bson:"updated_at"`
}
