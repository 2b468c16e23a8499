// Package metadata reads best-effort song tags from uploaded audio.
//
// Extraction never fails: malformed or missing tags simply leave the
// corresponding fields empty and callers apply their own defaults.
package metadata

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
)

// Metadata holds the tag fields found in an audio stream.
type Metadata struct {
	Title    string
	Artist   string
	Album    string
	Checksum string
	// HasTag reports whether any tag block was recognised.
	HasTag bool
}

// Extractor reads tags from audio streams.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBytes is Extract over an in-memory buffer.
func (e *Extractor) ExtractBytes(data []byte) Metadata {
	return e.Extract(bytes.NewReader(data))
}

// Extract parses ID3v2 frames first and fills whatever is still missing from
// the generic container reader (ID3v1, MP4, FLAC, OGG).
func (e *Extractor) Extract(r io.ReadSeeker) Metadata {
	var md Metadata

	if v2, err := readID3v2(r); err == nil {
		md = v2
	}

	if md.Title == "" || md.Artist == "" || md.Album == "" {
		if other, err := readContainer(r); err == nil {
			md.HasTag = md.HasTag || other.HasTag
			if md.Title == "" {
				md.Title = other.Title
			}
			if md.Artist == "" {
				md.Artist = other.Artist
			}
			if md.Album == "" {
				md.Album = other.Album
			}
		}
	}

	if sum, err := checksum(r); err == nil {
		md.Checksum = sum
	}

	return md
}

func readID3v2(r io.ReadSeeker) (md Metadata, err error) {
	defer recoverInto(&err)

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Metadata{}, err
	}
	t, err := id3v2.ParseReader(r, id3v2.Options{
		Parse:       true,
		ParseFrames: []string{"Title", "Artist", "Album/Movie/Show title"},
	})
	if err != nil {
		return Metadata{}, fmt.Errorf("parse id3v2: %w", err)
	}
	// t.Close would close r when it is the staged *os.File; the caller owns it.

	if !t.HasFrames() {
		return Metadata{}, nil
	}
	return Metadata{
		Title:  clean(t.Title()),
		Artist: clean(t.Artist()),
		Album:  clean(t.Album()),
		HasTag: true,
	}, nil
}

func readContainer(r io.ReadSeeker) (md Metadata, err error) {
	defer recoverInto(&err)

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Metadata{}, err
	}
	m, err := tag.ReadFrom(r)
	if err != nil {
		return Metadata{}, fmt.Errorf("read tags: %w", err)
	}
	return Metadata{
		Title:  clean(m.Title()),
		Artist: clean(m.Artist()),
		Album:  clean(m.Album()),
		HasTag: true,
	}, nil
}

const (
	id3v2HeaderSize = 10
	id3v1Size       = 128
)

// checksum hashes the audio payload only, so retagging a file keeps its sum.
// tag.Sum does not skip ID3v2.4 headers, so leading ID3v2 blocks are stepped
// over here and the rest is left to it for other containers.
func checksum(r io.ReadSeeker) (sum string, err error) {
	defer recoverInto(&err)

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	offset, err := id3v2Length(r)
	if err != nil {
		return "", err
	}
	if offset == 0 {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return "", err
		}
		return tag.Sum(r)
	}

	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return "", err
	}
	audio, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	if n := len(audio); n >= id3v1Size && bytes.HasPrefix(audio[n-id3v1Size:], []byte("TAG")) {
		audio = audio[:n-id3v1Size]
	}
	return fmt.Sprintf("%x", sha1.Sum(audio)), nil
}

var errBadID3Size = errors.New("id3v2: size is not syncsafe")

// id3v2Length returns the byte length of a leading ID3v2 block including its
// header and optional footer, or 0 when the stream does not start with one.
func id3v2Length(r io.Reader) (int64, error) {
	header := make([]byte, id3v2HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, nil
		}
		return 0, err
	}
	if !bytes.HasPrefix(header, []byte("ID3")) {
		return 0, nil
	}

	var size int64
	for _, b := range header[6:10] {
		if b&0x80 != 0 {
			return 0, errBadID3Size
		}
		size = size<<7 | int64(b)
	}
	size += id3v2HeaderSize
	if header[5]&0x10 != 0 {
		size += id3v2HeaderSize
	}
	return size, nil
}

func recoverInto(err *error) {
	if p := recover(); p != nil {
		*err = fmt.Errorf("tag parser panic: %v", p)
	}
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}
