package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/frameforge/frame-extractor/internal/config"
	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/pkg/logger"
)

const framePattern = "frame_%04d.png"

// ffmpegExtractor produces still frames from a local video file by shelling
// out to ffmpeg, one frame per sampling interval.
type ffmpegExtractor struct {
	cfg    *config.ExtractorConfig
	logger logger.Logger
}

func NewFFmpegExtractor(cfg *config.ExtractorConfig, log logger.Logger) jobs.FrameExtractor {
	return &ffmpegExtractor{
		cfg:    cfg,
		logger: log,
	}
}

func (e *ffmpegExtractor) ExtractFrames(ctx context.Context, videoPath, outputDir string) ([]string, error) {
	bin := e.cfg.FFmpegBin
	if bin == "" {
		bin = "ffmpeg"
	}
	fps := e.cfg.FramesPerSec
	if fps <= 0 {
		fps = 1
	}

	e.logger.Infof("extracting frames from %s into %s", videoPath, outputDir)

	cmd := exec.CommandContext(ctx, bin,
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=%d", fps),
		"-start_number", "0",
		filepath.Join(outputDir, framePattern),
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame extraction failed: %v, stderr: %s", err, stderr.String())
	}

	frames, err := ListFrames(outputDir)
	if err != nil {
		return nil, err
	}

	e.logger.Infof("extraction finished, %d frames produced", len(frames))
	return frames, nil
}

// ListFrames returns the png frames under dir, sorted by filename so the
// zero-padded frame numbering preserves extraction order.
func ListFrames(dir string) ([]string, error) {
	frames, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("failed to list extracted frames: %w", err)
	}
	sort.Strings(frames)
	return frames, nil
}
