package imagepkg

import (
	"context"
	"time"

	"github.com/youruser/subhasayah/internal/util"
)

// DownloadPhoto fetches a photo from url and normalizes it.
func DownloadPhoto(ctx context.Context, url string, timeout time.Duration) (*Normalized, error) {
	body, err := util.GetBytes(ctx, url, timeout)
	if err != nil {
		return nil, err
	}
	return Normalize(body)
}
