package model

import "time"

type PushSubscription struct {
	SubscriptionID string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	Endpoint       string    `bson:"endpoint" json:"endpoint" binding:"required"`
	P256dh         string    `bson:"p256dh" json:"p256dh" binding:"required"`
	Auth           string    `bson:"auth" json:"auth" binding:"required"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
