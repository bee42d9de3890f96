package jobs

import "context"

// FrameExtractor turns a local video file into an ordered sequence of frame
// image files written under outputDir.
type FrameExtractor interface {
	ExtractFrames(ctx context.Context, videoPath, outputDir string) ([]string, error)
}
