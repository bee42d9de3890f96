package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListFramesSortsByName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"frame_0002.png", "frame_0000.png", "frame_0010.png", "frame_0001.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("png"), 0o600))
	}
	// Non-frame files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input_video"), []byte("mp4"), 0o600))

	frames, err := ListFrames(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(frames))
	for _, f := range frames {
		names = append(names, filepath.Base(f))
	}
	require.Equal(t, []string{"frame_0000.png", "frame_0001.png", "frame_0002.png", "frame_0010.png"}, names)
}

func TestListFramesEmptyDir(t *testing.T) {
	frames, err := ListFrames(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, frames)
}
