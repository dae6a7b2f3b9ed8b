package files

import (
	"context"
	"os"
)

// Reader reads process definitions from the local file system.
type Reader struct{}

func NewReader() Reader { return Reader{} }

// ReadFile returns the raw bytes at path; no decoding or validation happens here.
func (Reader) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
