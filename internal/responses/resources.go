package responses

import (
	"net/url"
	"strings"

	"tuneful/internal/models"
)

// FileResource is the JSON form of a File
type FileResource struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// SongResource is the JSON form of a Song
type SongResource struct {
	ID   uint         `json:"id"`
	File FileResource `json:"file"`
}

// Serializer builds resources whose paths point below the public upload prefix
type Serializer struct {
	uploadPath string
}

func NewSerializer(uploadPath string) Serializer {
	return Serializer{uploadPath: "/" + strings.Trim(uploadPath, "/")}
}

// FilePath returns the URL path a stored file is served from
func (s Serializer) FilePath(name string) string {
	return s.uploadPath + "/" + url.PathEscape(name)
}

func (s Serializer) File(file models.File) FileResource {
	return FileResource{
		ID:   file.ID,
		Name: file.Name,
		Path: s.FilePath(file.Name),
	}
}

func (s Serializer) Song(song models.Song) SongResource {
	return SongResource{
		ID:   song.ID,
		File: s.File(song.File),
	}
}

// Songs never returns nil so an empty list encodes as []
func (s Serializer) Songs(songs []models.Song) []SongResource {
	out := make([]SongResource, 0, len(songs))
	for _, song := range songs {
		out = append(out, s.Song(song))
	}
	return out
}

// Message is the body of every client error
type Message struct {
	Message string `json:"message"`
}
