package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Uploaded media lives on the local filesystem under UPLOAD_DIR (default
// public/upload) and is served statically by the web tier at /upload.

const MaxUploadSize = 5 * 1024 * 1024 // 5MB

var allowedUploadTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

func UploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = filepath.Join("public", "upload")
	}
	return dir
}

func InitializeUploads() {
	dir := UploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Panic("error creating upload directory: " + err.Error())
	}
	log.Println("Upload directory ready:", dir)
}

// AllowedUploadType maps a sniffed MIME type to its file extension. Returns
// ok=false for anything outside the image whitelist.
func AllowedUploadType(mime string) (string, bool) {
	ext, ok := allowedUploadTypes[strings.ToLower(mime)]
	return ext, ok
}

// SaveUpload writes the file bytes under a randomized name and returns the
// stored filename. Nothing is written when the size check fails.
func SaveUpload(data []byte, ext string) (string, error) {
	if len(data) > MaxUploadSize {
		return "", fmt.Errorf("file too large: %.2fMB, maximum is 5MB", float64(len(data))/1024/1024)
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	filename := fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), random, ext)
	path := filepath.Join(UploadDir(), filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}
