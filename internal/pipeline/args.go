package pipeline

import (
	"strconv"

	"github.com/bachtran02/go-live-streamer/internal/config"
)

// File descriptors of the output pipes as seen by the child (ExtraFiles
// start at 3).
const (
	audioFD = 3
	videoFD = 4
)

// BuildArgs renders the ffmpeg command line for target. Audio is always
// encoded to 20ms Opus pages in Ogg; video, when requested, is emitted as an
// Annex-B H264 elementary stream.
func BuildArgs(target string, enc config.EncodingConfig, withVideo bool) []string {
	args := []string{"-hide_banner", "-loglevel", "warning", "-nostdin", "-re"}
	if enc.MinimizeLatency {
		args = append(args, "-fflags", "nobuffer", "-flags", "low_delay")
	}
	args = append(args, "-i", target)

	args = append(args,
		"-map", "0:a:0?",
		"-c:a", "libopus",
		"-b:a", kbps(enc.BitrateAudio),
		"-ar", "48000",
		"-ac", "2",
		"-page_duration", "20000",
		"-f", "ogg", pipeOut(audioFD),
	)

	if !withVideo {
		return args
	}

	args = append(args, "-map", "0:v:0")
	if enc.NoTranscoding {
		args = append(args, "-c:v", "copy", "-bsf:v", "h264_mp4toannexb")
	} else {
		fps := enc.Framerate
		args = append(args,
			"-c:v", "libx264",
			"-preset", enc.H26xPreset,
			"-profile:v", "baseline",
			"-pix_fmt", "yuv420p",
			"-b:v", kbps(enc.BitrateVideo),
			"-maxrate", kbps(enc.BitrateVideoMax),
			"-bufsize", kbps(enc.BitrateVideoMax*2),
			"-r", strconv.Itoa(fps),
			"-g", strconv.Itoa(fps*2),
			"-bf", "0",
		)
		if enc.MinimizeLatency {
			args = append(args, "-tune", "zerolatency")
		}
	}
	return append(args, "-f", "h264", pipeOut(videoFD))
}

func kbps(v int) string { return strconv.Itoa(v) + "k" }

func pipeOut(fd int) string { return "pipe:" + strconv.Itoa(fd) }
