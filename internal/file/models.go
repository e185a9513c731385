package file

import (
	"io"
)

// Download is a file streamed from Telegram. The caller closes Body.
type Download struct {
	Name string
	// ASCIIName is the fallback for clients that ignore filename*.
	ASCIIName string
	MimeType  string
	Body      io.ReadCloser
	// Size is -1 when Telegram does not send a length.
	Size int64
}
