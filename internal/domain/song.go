package domain

import "time"

const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
)

// Song is an uploaded audio file stored inline together with its tags.
type Song struct {
	ID          int64
	UserID      int64
	Title       string
	Artist      string
	Album       string
	ContentType string
	Checksum    string
	Size        int64
	AudioData   []byte
	CreatedAt   time.Time
}

// SongSummary is the listing view of a Song. It never carries audio bytes.
type SongSummary struct {
	ID          int64
	UserID      int64
	Title       string
	Artist      string
	Album       string
	ContentType string
	Checksum    string
	Size        int64
	CreatedAt   time.Time
}

// SongAudio is the playback payload of a Song.
type SongAudio struct {
	ID          int64
	ContentType string
	Data        []byte
}

// Summary drops the audio payload.
func (s Song) Summary() SongSummary {
	return SongSummary{
		ID:          s.ID,
		UserID:      s.UserID,
		Title:       s.Title,
		Artist:      s.Artist,
		Album:       s.Album,
		ContentType: s.ContentType,
		Checksum:    s.Checksum,
		Size:        s.Size,
		CreatedAt:   s.CreatedAt,
	}
}
