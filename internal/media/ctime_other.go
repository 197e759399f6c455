//go:build !linux && !darwin

package media

import (
	"os"
	"time"
)

// statCtime falls back to ModTime on platforms without a portable
// ctime accessor (e.g. Windows).
func statCtime(info os.FileInfo) time.Time {
	return info.ModTime()
}
