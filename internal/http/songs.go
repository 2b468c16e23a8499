package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"vibefy/internal/domain"
	"vibefy/internal/service"
)

// playback is always served as MP3; the stored content type is informational
const playbackType = "audio/mpeg"

// multipart framing allowance on top of the file size limit
const multipartOverhead = 1 << 20

type SongResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album,omitempty"`
	ContentType string `json:"contentType"`
	SizeInBytes int64  `json:"sizeInBytes"`
	Checksum    string `json:"checksum,omitempty"`
	UploadedAt  string `json:"uploadedAt"`
}

func songToResponse(song domain.SongSummary) SongResponse {
	return SongResponse{
		ID:          song.ID,
		Title:       song.Title,
		Artist:      song.Artist,
		Album:       song.Album,
		ContentType: song.ContentType,
		SizeInBytes: song.Size,
		Checksum:    song.Checksum,
		UploadedAt:  song.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) uploadSong(c *gin.Context) {
	session := currentSession(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": msgUploadFailed + service.ErrUploadTooLarge.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": msgFileRequired})
		return
	}
	if fileHeader.Size > h.opts.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": msgUploadFailed + service.ErrUploadTooLarge.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Errorf("open uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgUploadFailed + msgSomethingWrong})
		return
	}
	defer file.Close()

	_, err = h.songs.Upload(c.Request.Context(), service.UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		OwnerEmail:  session.Email,
		Body:        file,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": msgSongUploaded})
	case errors.Is(err, service.ErrEmptyUpload):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgUploadFailed + err.Error()})
	case errors.Is(err, service.ErrUploadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": msgUploadFailed + err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgUploadFailed + msgUserNotFound})
	default:
		h.log.WithField("user_id", session.UserID).Errorf("upload song: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgUploadFailed + msgSomethingWrong})
	}
}

func (h *Handler) listSongs(c *gin.Context) {
	session := currentSession(c)

	songs, err := h.songs.ListSongs(c.Request.Context(), session.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": msgUserNotFound})
			return
		}
		h.log.WithField("user_id", session.UserID).Errorf("list songs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgDatabaseError})
		return
	}

	resp := make([]SongResponse, len(songs))
	for i := range songs {
		resp[i] = songToResponse(songs[i])
	}
	c.JSON(http.StatusOK, resp)
}

// playSong keeps the historical contract of answering 500 for malformed or
// unknown ids and of serving every song as audio/mpeg.
func (h *Handler) playSong(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("songId"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgSomethingWrong})
		return
	}

	audio, err := h.songs.GetSong(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSongNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": msgSongNotFound})
			return
		}
		h.log.WithField("song_id", id).Errorf("get song: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgDatabaseError})
		return
	}

	c.Header("Content-Length", strconv.Itoa(len(audio.Data)))
	c.Data(http.StatusOK, playbackType, audio.Data)
}
