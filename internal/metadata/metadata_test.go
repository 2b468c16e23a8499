package metadata

import (
	"bytes"
	"testing"

	"github.com/bogem/id3v2/v2"
)

// fakeFrames stands in for MPEG audio frames following the tag.
var fakeFrames = bytes.Repeat([]byte{0xff, 0xfb, 0x90, 0x64, 0x00, 0x0f}, 32)

func taggedMP3(t *testing.T, title, artist, album string) []byte {
	t.Helper()

	tg := id3v2.NewEmptyTag()
	if title != "" {
		tg.SetTitle(title)
	}
	if artist != "" {
		tg.SetArtist(artist)
	}
	if album != "" {
		tg.SetAlbum(album)
	}

	var buf bytes.Buffer
	if _, err := tg.WriteTo(&buf); err != nil {
		t.Fatalf("write id3 tag: %v", err)
	}
	buf.Write(fakeFrames)
	return buf.Bytes()
}

func TestExtract(t *testing.T) {
	e := NewExtractor()

	t.Run("Title and artist from ID3v2", func(t *testing.T) {
		md := e.ExtractBytes(taggedMP3(t, "T", "A", "Album"))

		if md.Title != "T" {
			t.Errorf("expected title T, got %q", md.Title)
		}
		if md.Artist != "A" {
			t.Errorf("expected artist A, got %q", md.Artist)
		}
		if md.Album != "Album" {
			t.Errorf("expected album Album, got %q", md.Album)
		}
		if !md.HasTag {
			t.Error("expected HasTag to be true")
		}
	})

	t.Run("Missing artist frame stays empty", func(t *testing.T) {
		md := e.ExtractBytes(taggedMP3(t, "Only Title", "", ""))

		if md.Title != "Only Title" {
			t.Errorf("expected title, got %q", md.Title)
		}
		if md.Artist != "" {
			t.Errorf("expected empty artist, got %q", md.Artist)
		}
	})

	t.Run("Garbage input yields no tags", func(t *testing.T) {
		inputs := map[string][]byte{
			"empty":          nil,
			"ten bytes":      []byte("0123456789"),
			"short":          []byte("ID"),
			"truncated id3":  []byte("ID3\x04\x00\x00\x00\x00\x01\x00\x01\x02"),
			"random payload": bytes.Repeat([]byte{0x13, 0x37}, 300),
		}
		for name, data := range inputs {
			md := e.ExtractBytes(data)
			if md.Title != "" || md.Artist != "" || md.Album != "" {
				t.Errorf("%s: expected no tag fields, got %+v", name, md)
			}
		}
	})

	t.Run("Checksum ignores tags", func(t *testing.T) {
		first := e.ExtractBytes(taggedMP3(t, "One", "A", ""))
		second := e.ExtractBytes(taggedMP3(t, "Two", "B", "C"))

		if first.Checksum == "" {
			t.Fatal("expected checksum to be computed")
		}
		if first.Checksum != second.Checksum {
			t.Errorf("expected equal checksums for the same audio, got %s and %s", first.Checksum, second.Checksum)
		}

		withV1 := append(append([]byte{}, taggedMP3(t, "Three", "D", "")...), id3v1Block("Old")...)
		if got := e.ExtractBytes(withV1).Checksum; got != first.Checksum {
			t.Errorf("expected trailing ID3v1 block to be ignored, got %s", got)
		}
	})
}

func id3v1Block(title string) []byte {
	block := make([]byte, id3v1Size)
	copy(block, "TAG")
	copy(block[3:33], title)
	return block
}

func TestID3v2Length(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected int64
		wantErr  bool
	}{
		{"no tag", []byte("\xff\xfb\x90\x64 plain frames"), 0, false},
		{"too short", []byte("ID3"), 0, false},
		{"small tag", []byte("ID3\x04\x00\x00\x00\x00\x00\x14"), 30, false},
		{"syncsafe size", []byte("ID3\x04\x00\x00\x00\x00\x01\x00"), 138, false},
		{"footer flag", []byte("ID3\x04\x00\x10\x00\x00\x00\x14"), 40, false},
		{"not syncsafe", []byte("ID3\x04\x00\x00\x00\x00\x80\x00"), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := id3v2Length(bytes.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("id3v2Length() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("id3v2Length() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Title", "Title"},
		{"Title\x00", "Title"},
		{"  Padded  ", "Padded"},
		{"\x00", ""},
	}
	for _, tt := range tests {
		if got := clean(tt.input); got != tt.expected {
			t.Errorf("clean(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
