package media

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const (
	ffmpegBin  = "ffmpeg"
	ffprobeBin = "ffprobe"
)

// Probe holds the source properties reported by ffprobe.
type Probe struct {
	Duration  time.Duration
	Width     int
	Height    int
	Codec     string
	FrameRate float64
	SizeBytes int64
	BitRate   int64
}

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
	BitRate  string `json:"bit_rate"`
}

type ffprobeStream struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	CodecName  string `json:"codec_name"`
	RFrameRate string `json:"r_frame_rate"`
}

// ProbeSource inspects src with ffprobe. src may be a local path or a URL.
func ProbeSource(ctx context.Context, src string) (Probe, error) {
	cmd := exec.CommandContext(ctx, ffprobeBin,
		"-v", "error",
		"-show_entries", "format=duration,size,bit_rate",
		"-show_entries", "stream=width,height,codec_name,r_frame_rate",
		"-of", "json",
		src,
	)
	out, err := cmd.Output()
	if err != nil {
		probeErr := &Error{Op: "probe", Code: ErrCodeSourceError, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			probeErr.Stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		return Probe{}, probeErr
	}
	var raw ffprobeOutput
	if err := json.Unmarshal(out, &raw); err != nil {
		return Probe{}, &Error{Op: "probe", Code: ErrCodeSourceError, Err: err}
	}
	return parseProbe(raw)
}

func parseProbe(raw ffprobeOutput) (Probe, error) {
	p := Probe{
		Duration:  parseSeconds(raw.Format.Duration),
		SizeBytes: parseInt(raw.Format.Size),
		BitRate:   parseInt(raw.Format.BitRate),
	}
	for _, s := range raw.Streams {
		if s.Width <= 0 || s.Height <= 0 {
			continue
		}
		p.Width = s.Width
		p.Height = s.Height
		p.Codec = s.CodecName
		p.FrameRate = parseFrameRate(s.RFrameRate)
		break
	}
	if p.Width == 0 {
		return Probe{}, &Error{Op: "probe", Code: ErrCodeSourceError, Err: errors.New("no video stream")}
	}
	return p, nil
}

func parseSeconds(s string) time.Duration {
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseFrameRate parses ffprobe's rational frame rate, such as "30000/1001".
// It returns 0 when the rate is missing or malformed.
func parseFrameRate(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
