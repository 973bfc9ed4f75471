package model

import (
	"time"
)

// Video is a minimal video record: enough to resolve watch history with an
// owner projection. Video publishing itself lives in another service.
type Video struct {
	ID           string    `db:"id"`
	OwnerID      string    `db:"owner_id"`
	Title        string    `db:"title"`
	ThumbnailURL string    `db:"thumbnail_url"`
	VideoURL     string    `db:"video_url"`
	Duration     int64     `db:"duration"` // seconds
	Views        int64     `db:"views"`
	CreatedAt    time.Time `db:"created_at"`
}

// VideoOwner is the public projection of a video's owning user embedded in
// watch history results: fullName, username and avatar only.
type VideoOwner struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// WatchEntry is one resolved watch-history element.
type WatchEntry struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	ThumbnailURL string     `json:"thumbnail"`
	VideoURL     string     `json:"videoFile"`
	Duration     int64      `json:"duration"`
	Views        int64      `json:"views"`
	CreatedAt    time.Time  `json:"createdAt"`
	Owner        VideoOwner `json:"owner"`
}
