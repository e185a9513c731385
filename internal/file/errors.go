package file

import (
	"fmt"
)

type ErrDownloadFailed struct {
	FileID int64
	Err    error
}

func (e *ErrDownloadFailed) Error() string {
	return fmt.Errorf("failed to download file %d: %w", e.FileID, e.Err).Error()
}

func (e *ErrDownloadFailed) Unwrap() error {
	return e.Err
}
