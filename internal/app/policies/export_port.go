package policies

import (
	"context"
	"io"
)

// ReportArchive stores a rendered report and returns where it can be fetched.
type ReportArchive interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (publicURL string, err error)
}
