package media

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"time"

	trailcamerrors "github.com/five82/trailcam/internal/errors"
	"github.com/five82/trailcam/internal/ffprobe"
	"github.com/five82/trailcam/internal/fileitem"
)

// videoDims probes a video's pixel dimensions via ffprobe.
func videoDims(path string) (width, height int, err error) {
	info, err := ffprobe.Probe(path)
	if err != nil {
		return 0, 0, trailcamerrors.NewDecodeError("ffprobe video dims", err)
	}
	return info.Width, info.Height, nil
}

// decodeVideoFrames spawns ffmpeg to produce raw rgb24 frames at the
// source resolution, optionally restricted to keyframes. Each returned
// image is an *image.NRGBA the same dims as the source.
func decodeVideoFrames(path string, width, height int, iframeOnly bool) ([]image.Image, error) {
	args := []string{"-v", "error"}
	if iframeOnly {
		args = append(args, "-skip_frame", "nokey")
	}
	args = append(args, "-i", path, "-f", "rawvideo", "-pix_fmt", "rgb24", "-")

	cmd := exec.Command("ffmpeg", args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, trailcamerrors.NewDecodeError("open ffmpeg stdout", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, trailcamerrors.NewDecodeError("start ffmpeg", err)
	}

	frameSize := width * height * 3
	reader := bufio.NewReaderSize(stdout, frameSize)
	var frames []image.Image

	for {
		buf := make([]byte, frameSize)
		if _, err := io.ReadFull(reader, buf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			_ = cmd.Wait()
			return nil, trailcamerrors.NewDecodeError("read raw video frame", err)
		}
		frames = append(frames, rgbToNRGBA(buf, width, height))
	}

	if err := cmd.Wait(); err != nil {
		if len(frames) == 0 {
			return nil, trailcamerrors.NewDecodeError("ffmpeg decode failed", err)
		}
	}
	return frames, nil
}

func rgbToNRGBA(rgb []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		img.Pix[i*4] = rgb[i*3]
		img.Pix[i*4+1] = rgb[i*3+1]
		img.Pix[i*4+2] = rgb[i*3+2]
		img.Pix[i*4+3] = 255
	}
	return img
}

// sampleEvenly returns the indices of `sampleSize` items evenly spaced
// across a sequence of length `length`, using index = floor(i*length/sampleSize).
// Returns nil if sampleSize or length is zero.
func sampleEvenly(length, sampleSize int) []int {
	if sampleSize <= 0 || length <= 0 {
		return nil
	}
	step := float64(length) / float64(sampleSize)
	indices := make([]int, sampleSize)
	for i := 0; i < sampleSize; i++ {
		indices[i] = int(float64(i) * step)
	}
	return indices
}

// videoDate derives a video's shoot time from filesystem metadata: the
// minimum of mtime and ctime (videos rarely carry usable
// EXIF/creation-time metadata across containers).
func videoDate(path string) *time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	mtime := info.ModTime()
	ctime := statCtime(info)
	t := mtime
	if ctime.Before(t) {
		t = ctime
	}
	return &t
}

// processVideo decodes a video file, samples frames evenly (or all
// keyframes first, then evenly among those), letterboxes each sampled
// frame, and returns one Frame per sample. If decoding yields zero
// frames, a single ErrFile is returned instead.
func processVideo(file fileitem.FileItem, imgsz int, maxFrames int, iframeOnly bool) Result {
	width, height, err := videoDims(file.WorkingPath)
	if err != nil {
		return Result{Err: &ErrFile{File: file, Err: err}}
	}

	decoded, err := decodeVideoFrames(file.WorkingPath, width, height, iframeOnly)
	if err != nil {
		return Result{Err: &ErrFile{File: file, Err: err}}
	}
	if len(decoded) == 0 {
		return Result{Err: &ErrFile{File: file, Err: fmt.Errorf("no frames decoded")}}
	}

	sampleSize := maxFrames
	if sampleSize <= 0 || sampleSize > len(decoded) {
		sampleSize = len(decoded)
	}
	indices := sampleEvenly(len(decoded), sampleSize)

	date := videoDate(file.WorkingPath)
	params := computeVideoLetterbox(width, height, imgsz)

	frames := make([]Frame, 0, len(indices))
	for _, idx := range indices {
		pixels := resizeWithPad(decoded[idx], imgsz, params)
		frames = append(frames, Frame{
			File:        file,
			Pixels:      pixels,
			Width:       width,
			Height:      height,
			ImageSize:   imgsz,
			PadX:        params.padX,
			PadY:        params.padY,
			Ratio:       params.ratio,
			FrameIndex:  idx,
			TotalFrames: len(indices),
			ShootTime:   date,
			IFrame:      iframeOnly,
		})
	}
	return Result{Frames: frames}
}
