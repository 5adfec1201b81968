package console

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/notify"
)

// UploadMedia sends a local file to the media library. A failed upload is
// reported and returned; no local placeholder is kept.
func UploadMedia(ctx context.Context, env Env, path string) (domain.Media, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Media{}, fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	m, err := env.Client.UploadMedia(ctx, filepath.Base(path), f)
	if err != nil {
		env.log().Error("media upload failed", "file", path, "error", err)
		env.notice(notify.LevelError, "Failed to upload "+filepath.Base(path))
		return domain.Media{}, fmt.Errorf("upload media: %w", err)
	}

	env.notice(notify.LevelSuccess, "Uploaded "+m.URL)
	return m, nil
}
