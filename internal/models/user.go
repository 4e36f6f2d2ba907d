package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account that can receive anonymous messages
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username            string             `bson:"username" json:"username"`
	Email               string             `bson:"email" json:"email"`
	Password            string             `bson:"password" json:"-"` // bcrypt hash
	VerifyCode          string             `bson:"verifyCode" json:"-"`
	VerifyCodeExpiry    time.Time          `bson:"verifyCodeExpiry" json:"-"`
	IsVerified          bool               `bson:"isVerified" json:"isVerified"`
	IsAcceptingMessages bool               `bson:"isAcceptingMessages" json:"isAcceptingMessages"`
	Messages            []Message          `bson:"messages" json:"messages"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}
