package wrap

import (
	"fmt"
	"io/fs"
	"os"
)

// stageAssets copies the SDK tree to dst, replacing anything already there.
func stageAssets(sdk fs.FS, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("removing stale SDK copy: %w", err)
	}
	if err := os.CopyFS(dst, sdk); err != nil {
		return fmt.Errorf("staging SDK: %w", err)
	}
	return nil
}
