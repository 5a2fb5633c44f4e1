package requests

// CreateSongRequest is the body of POST /api/songs once it has passed SongSchema
type CreateSongRequest struct {
	File FileReference `json:"file"`
}

// FileReference points at an existing file by id, or names one to create-or-reference
type FileReference struct {
	ID   *int64  `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}
