package assetbuild

import (
	"fmt"

	"github.com/alnah/go-assetbuild/internal/fileutil"
)

// CopyPair is one prebuilt bundle copied verbatim.
type CopyPair struct {
	Src string
	Dst string
}

// CopyFiles copies every pair in order, preserving mode and modification
// time and overwriting existing destinations. It stops at the first
// failure; files copied before it are left in place.
func CopyFiles(pairs []CopyPair) error {
	for _, p := range pairs {
		if err := fileutil.CopyFile(p.Src, p.Dst); err != nil {
			return fmt.Errorf("%w: %s -> %s: %w", ErrCopyAsset, p.Src, p.Dst, err)
		}
	}
	return nil
}
