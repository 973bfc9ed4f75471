package repository

import (
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/vidstream/vidstream/internal/model"
)

type SubscriptionRepository interface {
	Create(sub *model.Subscription) error
	Delete(subscriberID, channelID string) error
	CountForChannel(channelID string) (int64, error)
}

type subscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(sub *model.Subscription) error {
	query := `INSERT INTO subscriptions (id, subscriber_id, channel_id, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, sub.ID, sub.SubscriberID, sub.ChannelID, sub.CreatedAt)
	if err != nil {
		errStr := err.Error()
		// Subscribing twice is a no-op, not a failure
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return nil
		}
		return err
	}

	return nil
}

func (r *subscriptionRepository) Delete(subscriberID, channelID string) error {
	query := `DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`

	_, err := r.db.Exec(query, subscriberID, channelID)
	return err
}

func (r *subscriptionRepository) CountForChannel(channelID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`

	err := r.db.Get(&count, query, channelID)
	return count, err
}
