package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"vibefy/internal/domain"
	"vibefy/internal/repository"
	"vibefy/internal/repository/sqlite"
)

type testEnv struct {
	users      repository.UserRepository
	songs      repository.SongRepository
	stagingDir string
	logger     *logrus.Logger
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "vibefy.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	songs := sqlite.NewSongRepository(db)
	ctx := context.Background()
	if err := users.Init(ctx); err != nil {
		t.Fatalf("init users: %v", err)
	}
	if err := songs.Init(ctx); err != nil {
		t.Fatalf("init songs: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &testEnv{
		users:      users,
		songs:      songs,
		stagingDir: filepath.Join(t.TempDir(), "staging"),
		logger:     logger,
	}
}

func (e *testEnv) userService() UserService {
	return NewUserService(e.users, bcrypt.MinCost)
}

func (e *testEnv) songService(cfg SongConfig) SongService {
	cfg.StagingDir = e.stagingDir
	cfg.Logger = e.logger
	return NewSongService(cfg, e.users, e.songs, nil)
}

func (e *testEnv) register(t *testing.T, email, username, password string) *domain.User {
	t.Helper()
	user, err := e.userService().Register(context.Background(), email, username, password)
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func assertStagingEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read staging dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected staging dir to be empty, found %d entries", len(entries))
	}
}

func taggedMP3(t *testing.T, title, artist string) []byte {
	t.Helper()

	tg := id3v2.NewEmptyTag()
	tg.SetTitle(title)
	tg.SetArtist(artist)

	var buf bytes.Buffer
	if _, err := tg.WriteTo(&buf); err != nil {
		t.Fatalf("write id3 tag: %v", err)
	}
	buf.Write(bytes.Repeat([]byte{0xff, 0xfb, 0x90, 0x64}, 64))
	return buf.Bytes()
}
