package utils

import (
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveUploadedFile stores a multipart upload under destDir with a unique
// name and returns the path.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := uuid.New().String() + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Don't leave a partial file behind; the caller gets no path to
		// clean up on this branch.
		dst.Close()
		os.Remove(filePath)
		return "", err
	}

	return filePath, nil
}

// RemoveFile deletes a stored upload. Failures are logged, not propagated:
// cleanup must never mask the request outcome.
func RemoveFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := os.Remove(filePath); err != nil {
		log.Printf("Error removing uploaded file %s: %v", filePath, err)
	}
}
