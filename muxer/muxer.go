package muxer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/DowranRowshenow/youtube-downloader/downloader"
	"github.com/DowranRowshenow/youtube-downloader/log"
	"github.com/DowranRowshenow/youtube-downloader/source"
)

// stderrTailLimit bounds the diagnostic text kept from a failed invocation.
const stderrTailLimit = 2048

// Job is one multiplexer invocation: fetched input tracks plus the output path.
// Audio assets are ordered default-track-first.
type Job struct {
	Video      *downloader.Asset
	Audio      []downloader.Asset
	Subtitles  []downloader.Asset
	OutputPath string
}

// NewJob splits fetched assets by kind, preserving the plan's ordering within
// each kind (the first audio asset is the default playback track).
func NewJob(assets []downloader.Asset, outputPath string) Job {
	job := Job{OutputPath: outputPath}
	for i, asset := range assets {
		switch asset.Stream.Kind {
		case source.KindVideo:
			job.Video = &assets[i]
		case source.KindAudio:
			job.Audio = append(job.Audio, asset)
		case source.KindSubtitle:
			job.Subtitles = append(job.Subtitles, asset)
		}
	}
	return job
}

// MuxError reports a non-zero multiplexer exit along with its diagnostic text.
type MuxError struct {
	Err    error
	Stderr string
}

func (e *MuxError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("mux failed: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("mux failed: %v", e.Err)
}

func (e *MuxError) Unwrap() error {
	return e.Err
}

// Mux combines the job's tracks into one container via a single blocking
// ffmpeg invocation. Streams are copied, never re-encoded; each audio and
// subtitle track is tagged with its language, exactly one audio track carries
// the default disposition, and no subtitle is forced.
//
// Non-zero exit removes the partially-written output and returns a MuxError;
// the fetched assets are intentionally left in place for diagnosis.
func Mux(ctx context.Context, tc Toolchain, job Job) error {
	args := buildArgs(job)
	log.Debugf("invoking %s %s", tc.Path, strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tc.Path, args...)
	cmd.Stdout = nil
	cmd.Stderr = &stderr
	cmd.Stdin = nil

	if err := cmd.Run(); err != nil {
		// The partial output must not survive a failed mux.
		_ = os.Remove(job.OutputPath)
		return &MuxError{Err: err, Stderr: stderrTail(stderr.String())}
	}

	return nil
}

// buildArgs assembles the full ffmpeg argument list for one job.
func buildArgs(job Job) []string {
	args := []string{"-y", "-nostdin", "-hide_banner", "-loglevel", "error"}

	var inputs []downloader.Asset
	if job.Video != nil {
		inputs = append(inputs, *job.Video)
	}
	inputs = append(inputs, job.Audio...)
	inputs = append(inputs, job.Subtitles...)

	for _, in := range inputs {
		args = append(args, "-i", in.Path)
	}

	// Explicit maps keep input order authoritative for output track numbering.
	input := 0
	if job.Video != nil {
		args = append(args, "-map", strconv.Itoa(input)+":v:0")
		input++
	}
	for range job.Audio {
		args = append(args, "-map", strconv.Itoa(input)+":a:0")
		input++
	}
	for range job.Subtitles {
		args = append(args, "-map", strconv.Itoa(input)+":0")
		input++
	}

	args = append(args, "-c", "copy")
	if len(job.Subtitles) > 0 {
		args = append(args, "-c:s", subtitleCodec(job.OutputPath))
	}

	for i, audio := range job.Audio {
		idx := strconv.Itoa(i)
		if lang := audio.Stream.Language; lang != "" {
			args = append(args, "-metadata:s:a:"+idx, "language="+lang)
		}
		if i == 0 {
			args = append(args, "-disposition:a:"+idx, "default")
		} else {
			args = append(args, "-disposition:a:"+idx, "0")
		}
	}

	for i, sub := range job.Subtitles {
		idx := strconv.Itoa(i)
		if lang := sub.Stream.Language; lang != "" {
			args = append(args, "-metadata:s:s:"+idx, "language="+lang)
		}
		args = append(args, "-disposition:s:"+idx, "0")
	}

	return append(args, job.OutputPath)
}

// subtitleCodec picks the text-subtitle codec the output container accepts.
// Hosting sites serve vtt, which neither mkv nor mp4 will stream-copy.
func subtitleCodec(outputPath string) string {
	if strings.HasSuffix(outputPath, ".mp4") {
		return "mov_text"
	}
	return "srt"
}

// stderrTail keeps only the end of the diagnostic text, where ffmpeg puts the
// actual failure reason.
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTailLimit {
		s = s[len(s)-stderrTailLimit:]
	}
	return s
}
