//go:build !unix

package source

import (
	"errors"
	"os"
)

var errMmapUnsupported = errors.New("mmap is not supported on this platform")

func mapFile(_ *os.File, _ int) ([]byte, func() error, error) {
	return nil, nil, errMmapUnsupported
}
