package filemgr

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const maxUploadSize = 10 << 20 // 10MB per file

func ResolvePath(entity EntityType, picType PictureType) string {
	subfolder := PictureSubfolders[picType]
	if subfolder == "" {
		subfolder = "misc"
	}
	return filepath.Join("static", "uploads", strings.ToLower(string(entity)), subfolder)
}

func isExtensionAllowed(ext string, picType PictureType) bool {
	for _, a := range AllowedExtensions[picType] {
		if ext == a {
			return true
		}
	}
	return false
}

func isMIMEAllowed(mimeType string, picType PictureType) bool {
	for _, a := range AllowedMIMEs[picType] {
		if mimeType == a {
			return true
		}
	}
	return false
}

// SaveFormFiles stores every file uploaded under the field, in order.
func SaveFormFiles(form *multipart.Form, field string, entity EntityType, picType PictureType) ([]string, error) {
	files := form.File[field]
	names := make([]string, 0, len(files))
	for _, fh := range files {
		name, err := saveFile(fh, entity, picType)
		if err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}

func saveFile(header *multipart.FileHeader, entity EntityType, picType PictureType) (string, error) {
	if header.Size > maxUploadSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isExtensionAllowed(ext, picType) {
		return "", fmt.Errorf("%w: %s for %s", ErrInvalidExtension, ext, picType)
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	buf := make([]byte, 512)
	n, err := src.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read header: %w", err)
	}
	mimeType := http.DetectContentType(buf[:n])
	if !isMIMEAllowed(mimeType, picType) {
		return "", fmt.Errorf("%w: %s for %s", ErrInvalidMIME, mimeType, picType)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	destDir := ResolvePath(entity, picType)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + ext
	destPath := filepath.Join(destDir, name)
	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(destPath) // Cleanup partial files
		return "", fmt.Errorf("save file: %w", err)
	}

	return name, nil
}

// CreateThumb writes a jpg thumbnail next to a stored photo and returns
// the thumbnail file name.
func CreateThumb(entity EntityType, photoName string, width, height int) (string, error) {
	srcPath := filepath.Join(ResolvePath(entity, PicPhoto), photoName)
	f, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}

	thumb := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	destDir := ResolvePath(entity, PicThumb)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create thumb dir: %w", err)
	}

	name := strings.TrimSuffix(photoName, filepath.Ext(photoName)) + ".jpg"
	if err := imaging.Save(thumb, filepath.Join(destDir, name), imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("save thumb: %w", err)
	}
	return name, nil
}
