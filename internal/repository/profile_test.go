package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_ChannelProfile(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	subs := NewSubscriptionRepository(database)
	profiles := NewProfileRepository(database)

	channel := seedUser(t, users, "channel")
	fanOne := seedUser(t, users, "fan_one")
	fanTwo := seedUser(t, users, "fan_two")

	subscribe(t, subs, fanOne.ID, channel.ID)
	subscribe(t, subs, fanTwo.ID, channel.ID)
	// the channel follows one of its fans back
	subscribe(t, subs, channel.ID, fanOne.ID)

	profile, err := profiles.ChannelProfile("channel", fanOne.ID)
	require.NoError(t, err)
	assert.Equal(t, "channel", profile.Username)
	assert.Equal(t, "User channel", profile.FullName)
	assert.Equal(t, channel.AvatarURL, profile.Avatar)
	assert.Equal(t, int64(2), profile.SubscribersCount)
	assert.Equal(t, int64(1), profile.ChannelsSubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	// fanTwo has no follow-back so the channel's view of them flips
	profile, err = profiles.ChannelProfile("fan_two", channel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), profile.SubscribersCount)
	assert.False(t, profile.IsSubscribed)
}

func TestProfileRepository_ChannelProfileNotSubscribed(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	profiles := NewProfileRepository(database)

	seedUser(t, users, "channel")
	viewer := seedUser(t, users, "viewer")

	profile, err := profiles.ChannelProfile("channel", viewer.ID)
	require.NoError(t, err)
	assert.Zero(t, profile.SubscribersCount)
	assert.Zero(t, profile.ChannelsSubscribedToCount)
	assert.False(t, profile.IsSubscribed)
	assert.Empty(t, profile.CoverImage)
}

func TestProfileRepository_ChannelProfileNotFound(t *testing.T) {
	database := newTestDB(t)
	profiles := NewProfileRepository(database)

	_, err := profiles.ChannelProfile("nobody", "viewer")
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestProfileRepository_WatchHistory(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	videos := NewVideoRepository(database)
	profiles := NewProfileRepository(database)

	owner := seedUser(t, users, "creator")
	watcher := seedUser(t, users, "watcher")

	first := seedVideo(t, videos, owner.ID, "first")
	second := seedVideo(t, videos, owner.ID, "second")
	third := seedVideo(t, videos, owner.ID, "third")

	require.NoError(t, videos.AppendWatchHistory(watcher.ID, second.ID))
	require.NoError(t, videos.AppendWatchHistory(watcher.ID, first.ID))
	require.NoError(t, videos.AppendWatchHistory(watcher.ID, third.ID))

	entries, err := profiles.WatchHistory(watcher.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// entries come back in watch order, not creation order
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
	assert.Equal(t, third.ID, entries[2].ID)

	entry := entries[0]
	assert.Equal(t, "second", entry.Title)
	assert.Equal(t, second.VideoURL, entry.VideoURL)
	assert.Equal(t, second.ThumbnailURL, entry.ThumbnailURL)
	assert.Equal(t, int64(120), entry.Duration)
	assert.Equal(t, "creator", entry.Owner.Username)
	assert.Equal(t, "User creator", entry.Owner.FullName)
	assert.Equal(t, owner.AvatarURL, entry.Owner.Avatar)
}

func TestProfileRepository_WatchHistoryEmpty(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	profiles := NewProfileRepository(database)

	watcher := seedUser(t, users, "watcher")

	entries, err := profiles.WatchHistory(watcher.ID)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestSubscriptionRepository(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	subs := NewSubscriptionRepository(database)

	channel := seedUser(t, users, "channel")
	fan := seedUser(t, users, "fan")

	subscribe(t, subs, fan.ID, channel.ID)
	// subscribing twice is a no-op
	subscribe(t, subs, fan.ID, channel.ID)

	count, err := subs.CountForChannel(channel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, subs.Delete(fan.ID, channel.ID))
	count, err = subs.CountForChannel(channel.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestVideoRepository_ByID(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	videos := NewVideoRepository(database)

	owner := seedUser(t, users, "creator")
	created := seedVideo(t, videos, owner.ID, "clip")

	video, err := videos.ByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "clip", video.Title)
	assert.Equal(t, owner.ID, video.OwnerID)

	_, err = videos.ByID("missing")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}
