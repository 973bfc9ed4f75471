package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vidstream/vidstream/internal/model"
)

var ErrChannelNotFound = errors.New("channel not found")

// ProfileRepository builds the two store-side aggregation views. Callers only
// consume the result shapes; query syntax stays behind this interface.
type ProfileRepository interface {
	// ChannelProfile resolves the channel view for username, computing
	// subscriber counts and whether requesterID is among the subscribers.
	ChannelProfile(username, requesterID string) (*model.ChannelProfile, error)

	// WatchHistory resolves the requesting user's watch history in order,
	// each entry carrying its owner's public projection.
	WatchHistory(userID string) ([]model.WatchEntry, error)
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ChannelProfile(username, requesterID string) (*model.ChannelProfile, error) {
	profile := &model.ChannelProfile{}
	query := `SELECT
	    u.full_name,
	    u.username,
	    u.email,
	    u.avatar_url,
	    COALESCE(u.cover_image_url, '') AS cover_image_url,
	    (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
	    (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS channels_subscribed_to_count,
	    EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = $2) AS is_subscribed
	FROM users u
	WHERE u.username = $1`

	err := r.db.Get(profile, query, username, requesterID)
	if err == sql.ErrNoRows {
		return nil, ErrChannelNotFound
	}
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *profileRepository) WatchHistory(userID string) ([]model.WatchEntry, error) {
	query := `SELECT
	    v.id,
	    v.title,
	    v.thumbnail_url,
	    v.video_url,
	    v.duration,
	    v.views,
	    v.created_at,
	    o.full_name AS owner_full_name,
	    o.username AS owner_username,
	    o.avatar_url AS owner_avatar
	FROM watch_history wh
	JOIN videos v ON v.id = wh.video_id
	JOIN users o ON o.id = v.owner_id
	WHERE wh.user_id = $1
	ORDER BY wh.position`

	rows, err := r.db.Queryx(query, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := []model.WatchEntry{}
	for rows.Next() {
		var entry model.WatchEntry
		err = rows.Scan(
			&entry.ID, &entry.Title, &entry.ThumbnailURL, &entry.VideoURL,
			&entry.Duration, &entry.Views, &entry.CreatedAt,
			&entry.Owner.FullName, &entry.Owner.Username, &entry.Owner.Avatar,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
