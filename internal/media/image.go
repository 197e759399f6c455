package media

import (
	"bytes"
	"image"
	"image/jpeg"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	trailcamerrors "github.com/five82/trailcam/internal/errors"
	"github.com/five82/trailcam/internal/fileitem"
)

const exifDateLayout = "2006:01:02 15:04:05"

// decodeImage opens an image file with the primary decoder, falling
// back to the stdlib JPEG decoder if the primary one fails.
func decodeImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err == nil {
		return img, nil
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, trailcamerrors.NewDecodeError("read image file", err)
	}
	fallback, fbErr := jpeg.Decode(bytes.NewReader(data))
	if fbErr != nil {
		return nil, trailcamerrors.NewDecodeError("decode image (primary and fallback failed)", err)
	}
	return fallback, nil
}

// shootTime extracts the image's capture time from EXIF
// DateTimeOriginal, falling back to ModifyDate and then DateTime when
// the preceding tags are absent.
func shootTime(path string) *time.Time {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil
	}

	if tag, err := x.Get(exif.DateTimeOriginal); err == nil {
		if s, err := tag.StringVal(); err == nil {
			if t, err := time.ParseInLocation(exifDateLayout, s, time.Local); err == nil {
				return &t
			}
		}
	}
	if tag, err := x.Get(exif.FieldName("ModifyDate")); err == nil {
		if s, err := tag.StringVal(); err == nil {
			if t, err := time.ParseInLocation(exifDateLayout, s, time.Local); err == nil {
				return &t
			}
		}
	}
	if tag, err := x.Get(exif.DateTime); err == nil {
		if s, err := tag.StringVal(); err == nil {
			if t, err := time.ParseInLocation(exifDateLayout, s, time.Local); err == nil {
				return &t
			}
		}
	}
	return nil
}

// processImage decodes, letterboxes, and dates a single photo. It
// always returns exactly one Frame (frame_index=0, total_frames=1).
func processImage(file fileitem.FileItem, imgsz int) Result {
	img, err := decodeImage(file.WorkingPath)
	if err != nil {
		return Result{Err: &ErrFile{File: file, Err: err}}
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	params := computeImageLetterbox(w, h, imgsz)
	pixels := resizeWithPad(img, imgsz, params)

	frame := Frame{
		File:        file,
		Pixels:      pixels,
		Width:       w,
		Height:      h,
		ImageSize:   imgsz,
		PadX:        params.padX,
		PadY:        params.padY,
		Ratio:       params.ratio,
		FrameIndex:  0,
		TotalFrames: 1,
		ShootTime:   shootTime(file.WorkingPath),
	}
	return Result{Frames: []Frame{frame}}
}
