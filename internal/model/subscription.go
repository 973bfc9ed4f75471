package model

import (
	"time"
)

// Subscription is a subscriber→channel edge between two users.
type Subscription struct {
	ID           string    `db:"id"`
	SubscriberID string    `db:"subscriber_id"`
	ChannelID    string    `db:"channel_id"`
	CreatedAt    time.Time `db:"created_at"`
}

// ChannelProfile is the aggregation view for GET /c/{username}.
type ChannelProfile struct {
	FullName                  string `db:"full_name" json:"fullName"`
	Username                  string `db:"username" json:"username"`
	Email                     string `db:"email" json:"email"`
	Avatar                    string `db:"avatar_url" json:"avatar"`
	CoverImage                string `db:"cover_image_url" json:"coverImage"`
	SubscribersCount          int64  `db:"subscribers_count" json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `db:"channels_subscribed_to_count" json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `db:"is_subscribed" json:"isSubscribed"`
}
