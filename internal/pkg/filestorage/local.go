package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/logger"
)

// AudioDir is the subdirectory voice recordings are stored in
const AudioDir = "audio"

// NamingFunc builds the stored filename from the client supplied one
type NamingFunc func(original string) string

// UUIDName keeps the original extension behind a random name
func UUIDName(original string) string {
	return uuid.New().String() + filepath.Ext(original)
}

// VoiceName names every recording voice-<uuid>.webm regardless of what the client sent
func VoiceName(string) string {
	return "voice-" + uuid.New().String() + ".webm"
}

// Option configures a LocalStorage
type Option func(*LocalStorage)

// WithMaxBytes rejects uploads larger than n bytes; zero disables the limit
func WithMaxBytes(n int64) Option {
	return func(ls *LocalStorage) { ls.maxBytes = n }
}

// WithNaming replaces the filename generator
func WithNaming(fn NamingFunc) Option {
	return func(ls *LocalStorage) { ls.naming = fn }
}

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // URL prefix the root directory is served under
	maxBytes int64
	naming   NamingFunc
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the directory on the server, baseURL the prefix it is served under (e.g. /uploads).
func NewLocalStorage(basePath, baseURL string, opts ...Option) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	ls := &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		naming:   UUIDName,
	}
	for _, opt := range opts {
		opt(ls)
	}
	return ls, nil
}

var _ FileStorage = (*LocalStorage)(nil)

// BasePath returns the storage root on disk
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveFileWithPath saves a file to a specified subdirectory
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error) {
	if fileHeader == nil {
		return nil, apperrors.NewBadRequestError("no file provided")
	}
	if ls.maxBytes > 0 && fileHeader.Size > ls.maxBytes {
		logger.Warn().Str("filename", fileHeader.Filename).Int64("size", fileHeader.Size).Int64("limit", ls.maxBytes).Msg("Rejected oversized upload")
		return nil, fmt.Errorf("%d bytes exceeds limit of %d: %w", fileHeader.Size, ls.maxBytes, apperrors.ErrFileTooLarge)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return nil, fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	uniqueFilename := ls.naming(fileHeader.Filename)
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	// the header size is client supplied, so the copy is capped as well
	var src io.Reader = file
	if ls.maxBytes > 0 {
		src = io.LimitReader(file, ls.maxBytes+1)
	}
	written, err := io.Copy(dst, src)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}
	if ls.maxBytes > 0 && written > ls.maxBytes {
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("upload exceeds limit of %d bytes: %w", ls.maxBytes, apperrors.ErrFileTooLarge)
	}

	info := &FileInfo{
		URL:      ls.urlFor(subPath, uniqueFilename),
		Filename: uniqueFilename,
		FileSize: written,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Str("url", info.URL).Msg("File saved successfully")
	return info, nil
}

func (ls *LocalStorage) urlFor(subPath, filename string) string {
	if subPath != "" {
		return ls.baseURL + "/" + subPath + "/" + filename
	}
	return ls.baseURL + "/" + filename
}
