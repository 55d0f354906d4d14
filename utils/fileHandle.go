package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// SaveUploadedFile stores an uploaded banner, lesson video or material under
// destDir and returns the stored path
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Create a unique filename
	ext := filepath.Ext(file.Filename)
	newFilename := time.Now().Format("20060102150405") + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "/uploads/" + filepath.Base(filePath)
}
