package repository

import (
	"context"

	"vibefy/internal/domain"
)

// SongRepository persists songs with their audio payload inline.
type SongRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, song *domain.Song) (int64, error)
	GetAudio(ctx context.Context, id int64) (*domain.SongAudio, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.SongSummary, error)
}
