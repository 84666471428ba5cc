package review

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Review is a user comment and rating attached to a listing.
type Review struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	ListingID bson.ObjectID `bson:"listing_id"`
	AuthorID  bson.ObjectID `bson:"author_id"`
	Comment   string        `bson:"comment"`
	Rating    int           `bson:"rating"`
	CreatedAt time.Time     `bson:"created_at"`
}

// Form carries the review form fields. Rating is bounded 1..5.
type Form struct {
	Comment string `form:"comment" binding:"required"`
	Rating  int    `form:"rating" binding:"required,min=1,max=5"`
}
