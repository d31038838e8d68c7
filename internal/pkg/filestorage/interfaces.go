package filestorage

import (
	"mime/multipart"
)

// FileInfo represents information about a stored file
type FileInfo struct {
	URL      string // Path under which the file is served, e.g. /uploads/audio/voice-<uuid>.webm
	Filename string // Generated filename on disk
	FileSize int64  // Size in bytes
	MimeType string // MIME type reported by the client
}

// FileStorage stores uploaded files and reports where they are served
type FileStorage interface {
	// SaveFileWithPath stores the file under subPath of the storage root
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error)
}
