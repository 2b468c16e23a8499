package storage

import (
	"context"
	"io"
)

// PutOptions conveys the destination of an archived object.
type PutOptions struct {
	Bucket      string
	Key         string
	ContentType string
}

// Service copies song audio to remote object storage.
type Service interface {
	Put(ctx context.Context, body io.Reader, opts PutOptions) (string, error)
}
