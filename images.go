package galleria

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// upload is a processed image ready to be written to the uploads directory.
type upload struct {
	Filename string
	Width    int
	Height   int
	Data     []byte
}

// processImage decodes an image from src, scales it down to maxImageWidth
// if needed, and encodes it as JPEG.
func processImage(src io.Reader, originalName string) (upload, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return upload{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxImageWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return upload{}, fmt.Errorf("encode jpeg: %w", err)
	}

	name := Slugify(strings.TrimSuffix(originalName, filepath.Ext(originalName)))
	if name == "" {
		name = "image"
	}
	return upload{
		Filename: name + ".jpg",
		Width:    w,
		Height:   h,
		Data:     buf.Bytes(),
	}, nil
}

// saveUpload writes u under dir, appending a counter to the name until it
// no longer collides with an existing file. It returns the stored name.
func saveUpload(dir string, u upload) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	base := strings.TrimSuffix(u.Filename, ".jpg")
	candidate := u.Filename
	for counter := 2; ; counter++ {
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("write image: %w", err)
		}
		if _, err := f.Write(u.Data); err != nil {
			f.Close()
			return "", fmt.Errorf("write image: %w", err)
		}
		return candidate, f.Close()
	}
}
