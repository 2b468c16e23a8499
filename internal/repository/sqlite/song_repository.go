package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"vibefy/internal/domain"
	"vibefy/internal/repository"
)

const createSongsTable = `
CREATE TABLE IF NOT EXISTS songs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	artist TEXT NOT NULL,
	album TEXT NOT NULL DEFAULT '',
	content_type TEXT NOT NULL,
	checksum TEXT NOT NULL DEFAULT '',
	size INTEGER NOT NULL,
	audio_data BLOB NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_songs_user_id ON songs(user_id);
`

type SongRepository struct {
	db *sqlx.DB
}

func NewSongRepository(db *sqlx.DB) repository.SongRepository {
	return &SongRepository{db: db}
}

type songSummaryRow struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Title       string    `db:"title"`
	Artist      string    `db:"artist"`
	Album       string    `db:"album"`
	ContentType string    `db:"content_type"`
	Checksum    string    `db:"checksum"`
	Size        int64     `db:"size"`
	CreatedAt   time.Time `db:"created_at"`
}

type songAudioRow struct {
	ID          int64  `db:"id"`
	ContentType string `db:"content_type"`
	AudioData   []byte `db:"audio_data"`
}

func (r *SongRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSongsTable); err != nil {
		return fmt.Errorf("create songs table: %w", err)
	}
	return nil
}

func (r *SongRepository) Create(ctx context.Context, song *domain.Song) (int64, error) {
	if len(song.AudioData) == 0 {
		return 0, fmt.Errorf("insert song: audio data is empty")
	}
	song.CreatedAt = time.Now().UTC()
	song.Size = int64(len(song.AudioData))

	res, err := r.db.ExecContext(ctx, `
INSERT INTO songs (user_id, title, artist, album, content_type, checksum, size, audio_data, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		song.UserID,
		song.Title,
		song.Artist,
		song.Album,
		song.ContentType,
		song.Checksum,
		song.Size,
		song.AudioData,
		song.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert song: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("song last insert id: %w", err)
	}
	song.ID = id
	return id, nil
}

func (r *SongRepository) GetAudio(ctx context.Context, id int64) (*domain.SongAudio, error) {
	var row songAudioRow
	if err := r.db.GetContext(ctx, &row, `SELECT id, content_type, audio_data FROM songs WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("song %d: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan song audio: %w", err)
	}
	return &domain.SongAudio{
		ID:          row.ID,
		ContentType: row.ContentType,
		Data:        row.AudioData,
	}, nil
}

func (r *SongRepository) ListByUser(ctx context.Context, userID int64) ([]domain.SongSummary, error) {
	var rows []songSummaryRow
	if err := r.db.SelectContext(ctx, &rows, `
SELECT id, user_id, title, artist, album, content_type, checksum, size, created_at
FROM songs
WHERE user_id = ?
ORDER BY id ASC`, userID); err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}

	songs := make([]domain.SongSummary, len(rows))
	for i, row := range rows {
		songs[i] = domain.SongSummary{
			ID:          row.ID,
			UserID:      row.UserID,
			Title:       row.Title,
			Artist:      row.Artist,
			Album:       row.Album,
			ContentType: row.ContentType,
			Checksum:    row.Checksum,
			Size:        row.Size,
			CreatedAt:   row.CreatedAt.Local(),
		}
	}
	return songs, nil
}
