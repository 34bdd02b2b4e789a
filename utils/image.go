package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbWidth = 150

var ErrNotDataURI = errors.New("not a base64 image data URI")

// IsDataURI reports whether s looks like an inline base64 image upload.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image")
}

// SaveBase64Image decodes a "data:image/<ext>;base64,..." payload, stores it
// under ./static/uploads/<dir> and renders a thumbnail next to it. Returns
// the public path of the stored image.
func SaveBase64Image(data, dir string) (string, error) {
	if !IsDataURI(data) {
		return "", ErrNotDataURI
	}
	meta, payload, found := strings.Cut(data, ";base64,")
	if !found {
		return "", ErrNotDataURI
	}
	ext := strings.TrimPrefix(meta, "data:image/")
	if ext == "" || strings.ContainsAny(ext, "/.\\") {
		ext = "png"
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", err
	}

	filename := uuid.NewString() + "." + ext
	fullDir := "./static/uploads/" + dir
	if err := os.MkdirAll(fullDir, os.ModePerm); err != nil {
		return "", err
	}
	path := fullDir + "/" + filename
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", err
	}

	// Thumbnail is best effort; listings fall back to the original.
	if img, err := imaging.Decode(bytes.NewReader(raw)); err == nil {
		thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
		if err := imaging.Save(thumb, fullDir+"/thumb_"+filename); err != nil {
			log.Printf("thumbnail for %s failed: %v", filename, err)
		}
	}

	// must match the /static/uploads mount in routes
	return "/static/uploads/" + dir + "/" + filename, nil
}
