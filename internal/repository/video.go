package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vidstream/vidstream/internal/model"
)

var ErrVideoNotFound = errors.New("video not found")

type VideoRepository interface {
	Create(video *model.Video) error
	ByID(id string) (*model.Video, error)

	// AppendWatchHistory adds a video to the end of the user's watch history.
	AppendWatchHistory(userID, videoID string) error
}

type videoRepository struct {
	db *sqlx.DB
}

func NewVideoRepository(db *sqlx.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(video *model.Video) error {
	query := `INSERT INTO videos (id, owner_id, title, thumbnail_url, video_url, duration, views, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		video.ID, video.OwnerID, video.Title, video.ThumbnailURL,
		video.VideoURL, video.Duration, video.Views, video.CreatedAt)
	return err
}

func (r *videoRepository) ByID(id string) (*model.Video, error) {
	video := &model.Video{}
	query := `SELECT * FROM videos WHERE id = $1`

	err := r.db.Get(video, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrVideoNotFound
	}

	return video, err
}

func (r *videoRepository) AppendWatchHistory(userID, videoID string) error {
	query := `INSERT INTO watch_history (user_id, video_id, position, watched_at)
	          VALUES ($1, $2, COALESCE((SELECT MAX(position) FROM watch_history WHERE user_id = $1), -1) + 1, CURRENT_TIMESTAMP)`

	_, err := r.db.Exec(query, userID, videoID)
	return err
}
