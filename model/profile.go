package model

import "time"

// Profile carries user-level settings. The user id comes from the auth
// provider, so it doubles as the document id.
type Profile struct {
	UserID       string    `bson:"_id" json:"id"`
	Timezone     string    `bson:"timezone,omitempty" json:"timezone,omitempty"`
	NotionAPIKey string    `bson:"notion_api_key,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
