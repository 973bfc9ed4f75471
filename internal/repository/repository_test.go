package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/vidstream/vidstream/internal/db"
	"github.com/vidstream/vidstream/internal/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func seedUser(t *testing.T, users UserRepository, username string) *model.User {
	t.Helper()

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "User " + username,
		PasswordHash: "hash-" + username,
		AvatarURL:    "https://media.test/avatars/" + username + ".png",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, users.Create(user))
	return user
}

func seedVideo(t *testing.T, videos VideoRepository, ownerID, title string) *model.Video {
	t.Helper()

	video := &model.Video{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Title:        title,
		ThumbnailURL: "https://media.test/thumbs/" + title + ".png",
		VideoURL:     "https://media.test/videos/" + title + ".mp4",
		Duration:     120,
		Views:        7,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, videos.Create(video))
	return video
}

func subscribe(t *testing.T, subs SubscriptionRepository, subscriberID, channelID string) {
	t.Helper()

	require.NoError(t, subs.Create(&model.Subscription{
		ID:           uuid.New().String(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    time.Now().UTC(),
	}))
}
