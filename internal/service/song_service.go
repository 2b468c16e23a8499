package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vibefy/internal/domain"
	"vibefy/internal/metadata"
	"vibefy/internal/repository"
	"vibefy/internal/storage"
)

// DefaultMaxUploadBytes caps a single upload when no limit is configured.
const DefaultMaxUploadBytes int64 = 50 << 20

// SongService covers the upload pipeline and song retrieval.
type SongService interface {
	Upload(ctx context.Context, in UploadInput) (*domain.SongSummary, error)
	GetSong(ctx context.Context, id int64) (*domain.SongAudio, error)
	ListSongs(ctx context.Context, ownerEmail string) ([]domain.SongSummary, error)
}

// UploadInput is one uploaded file together with its owner.
type UploadInput struct {
	Filename    string
	ContentType string
	OwnerEmail  string
	Body        io.Reader
}

// TagExtractor reads tags from a staged audio file.
type TagExtractor interface {
	Extract(r io.ReadSeeker) metadata.Metadata
}

// SongConfig configures staging and the optional archive mirror.
type SongConfig struct {
	StagingDir string
	MaxBytes   int64
	Archive    storage.Service
	Bucket     string
	KeyPrefix  string
	Logger     *logrus.Logger
}

type songService struct {
	cfg       SongConfig
	users     repository.UserRepository
	songs     repository.SongRepository
	extractor TagExtractor
	log       *logrus.Entry
}

func NewSongService(cfg SongConfig, users repository.UserRepository, songs repository.SongRepository, extractor TagExtractor) SongService {
	if cfg.StagingDir == "" {
		cfg.StagingDir = os.TempDir()
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxUploadBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if extractor == nil {
		extractor = metadata.NewExtractor()
	}
	return &songService{
		cfg:       cfg,
		users:     users,
		songs:     songs,
		extractor: extractor,
		log:       cfg.Logger.WithField("component", "songs"),
	}
}

func (s *songService) Upload(ctx context.Context, in UploadInput) (*domain.SongSummary, error) {
	owner, err := s.resolveOwner(ctx, in.OwnerEmail)
	if err != nil {
		return nil, err
	}
	if in.Body == nil {
		return nil, ErrEmptyUpload
	}

	staged, err := s.createStagingFile()
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	defer s.discard(staged)

	n, err := io.Copy(staged, io.LimitReader(in.Body, s.cfg.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	if n == 0 {
		return nil, ErrEmptyUpload
	}
	if n > s.cfg.MaxBytes {
		return nil, ErrUploadTooLarge
	}

	md := s.extractTags(staged)
	if !md.HasTag {
		s.log.WithField("filename", in.Filename).Debug("no tags found in upload")
	}

	// persist exactly what was staged
	data, err := os.ReadFile(staged.Name())
	if err != nil {
		return nil, fmt.Errorf("read staged upload: %w", err)
	}

	song := &domain.Song{
		UserID:      owner.ID,
		Title:       songTitle(md.Title, in.Filename),
		Artist:      fallback(md.Artist, domain.UnknownArtist),
		Album:       md.Album,
		ContentType: contentType(in.ContentType, data),
		Checksum:    md.Checksum,
		AudioData:   data,
	}
	if _, err := s.songs.Create(ctx, song); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"song_id": song.ID,
		"user_id": owner.ID,
		"size":    song.Size,
	}).Info("song uploaded")

	s.archive(ctx, song, in.Filename)

	summary := song.Summary()
	return &summary, nil
}

func (s *songService) GetSong(ctx context.Context, id int64) (*domain.SongAudio, error) {
	if id <= 0 {
		return nil, ErrSongNotFound
	}
	audio, err := s.songs.GetAudio(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSongNotFound
		}
		return nil, err
	}
	return audio, nil
}

func (s *songService) ListSongs(ctx context.Context, ownerEmail string) ([]domain.SongSummary, error) {
	owner, err := s.resolveOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	songs, err := s.songs.ListByUser(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []domain.SongSummary{}
	}
	return songs, nil
}

func (s *songService) resolveOwner(ctx context.Context, email string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrUserNotFound
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *songService) createStagingFile() (*os.File, error) {
	if err := os.MkdirAll(s.cfg.StagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	path := filepath.Join(s.cfg.StagingDir, fmt.Sprintf("upload-%s.mp3", uuid.NewString()))
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
}

func (s *songService) discard(f *os.File) {
	_ = f.Close()
	if err := os.Remove(f.Name()); err != nil && !os.IsNotExist(err) {
		s.log.Warnf("remove staged upload %s: %v", f.Name(), err)
	}
}

func (s *songService) extractTags(r io.ReadSeeker) (md metadata.Metadata) {
	defer func() {
		if p := recover(); p != nil {
			s.log.Warnf("tag extraction panicked: %v", p)
			md = metadata.Metadata{}
		}
	}()
	return s.extractor.Extract(r)
}

func (s *songService) archive(ctx context.Context, song *domain.Song, filename string) {
	if s.cfg.Archive == nil || s.cfg.Bucket == "" {
		return
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".mp3"
	}
	key := storage.SongKey(s.cfg.KeyPrefix, song.UserID, song.ID, ext)

	location, err := s.cfg.Archive.Put(ctx, bytes.NewReader(song.AudioData), storage.PutOptions{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		ContentType: song.ContentType,
	})
	if err != nil {
		s.log.WithField("song_id", song.ID).Warnf("archive song: %v", err)
		return
	}
	s.log.WithField("song_id", song.ID).Infof("archived song to %s", location)
}

func songTitle(tagged, filename string) string {
	if tagged != "" {
		return tagged
	}
	if name := strings.TrimSpace(filepath.Base(filename)); name != "" && name != "." && name != "/" {
		return name
	}
	return domain.UnknownTitle
}

func contentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(data).String()
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
