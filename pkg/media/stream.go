package media

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/bmp"
)

const bmpHeaderSize = 14

// FrameStream reads decoded frames from an ffmpeg process piping BMP images
// to stdout. Next and Close may be called from different goroutines; frames
// must be consumed from a single goroutine.
type FrameStream struct {
	cmd    *exec.Cmd
	out    *bufio.Reader
	stderr *bytes.Buffer
	cancel context.CancelFunc

	mu      sync.Mutex
	closed  bool
	waited  bool
	waitErr error
}

// OpenFrameStream starts ffmpeg decoding src from the start offset at rate
// frames per second. A rate of zero keeps the source frame rate. Canceling
// ctx kills the decoder.
func OpenFrameStream(ctx context.Context, src string, start time.Duration, rate float64) (*FrameStream, error) {
	ctx, cancel := context.WithCancel(ctx)
	args := make([]string, 0, 12)
	if start > 0 {
		args = append(args, "-ss", strconv.FormatFloat(start.Seconds(), 'f', 3, 64))
	}
	args = append(args, "-i", src)
	if rate > 0 {
		args = append(args, "-vf", "fps="+strconv.FormatFloat(rate, 'f', -1, 64))
	}
	args = append(args, "-f", "image2pipe", "-vcodec", "bmp", "-loglevel", "error", "-")

	cmd := exec.CommandContext(ctx, ffmpegBin, args...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, &Error{Op: "stream", Code: ErrCodeDecoderError, Err: err}
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, &Error{Op: "stream", Code: ErrCodeSourceError, Err: err}
	}
	return &FrameStream{
		cmd:    cmd,
		out:    bufio.NewReaderSize(stdout, 1<<20),
		stderr: stderr,
		cancel: cancel,
	}, nil
}

// Next returns the next decoded frame. It returns [io.EOF] after the last
// frame of a cleanly finished source and [ErrClosed] after Close.
func (s *FrameStream) Next() (*image.RGBA, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	var header [bmpHeaderSize]byte
	if _, err := io.ReadFull(s.out, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, s.finish()
		}
		return nil, s.readError(err)
	}
	if header[0] != 'B' || header[1] != 'M' {
		return nil, &Error{Op: "stream", Code: ErrCodeDecoderError, Err: fmt.Errorf("bad frame header %q", header[:2])}
	}
	size := binary.LittleEndian.Uint32(header[2:6])
	if size < bmpHeaderSize {
		return nil, &Error{Op: "stream", Code: ErrCodeDecoderError, Err: fmt.Errorf("frame size %d too small", size)}
	}
	buf := make([]byte, size)
	copy(buf, header[:])
	if _, err := io.ReadFull(s.out, buf[bmpHeaderSize:]); err != nil {
		return nil, s.readError(err)
	}
	img, err := bmp.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, &Error{Op: "stream", Code: ErrCodeDecoderError, Err: err}
	}
	return toRGBA(img), nil
}

// Close kills the decoder and reaps the process. It is idempotent.
func (s *FrameStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	waited := s.waited
	s.waited = true
	s.mu.Unlock()
	s.cancel()
	if !waited {
		s.cmd.Wait()
	}
	return nil
}

// finish reaps the decoder and distinguishes a clean end of stream from a
// failed source.
func (s *FrameStream) finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if !s.waited {
		s.waited = true
		s.waitErr = s.cmd.Wait()
	}
	if s.waitErr != nil {
		return &Error{
			Op:     "stream",
			Code:   ErrCodeSourceError,
			Stderr: strings.TrimSpace(s.stderr.String()),
			Err:    s.waitErr,
		}
	}
	return io.EOF
}

func (s *FrameStream) readError(err error) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}
	return &Error{Op: "stream", Code: ErrCodeDecoderError, Err: err}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
