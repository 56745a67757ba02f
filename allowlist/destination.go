package allowlist

import (
	"path/filepath"
	"strings"

	"github.com/zkarcade/campaign-tools/config"
)

// SelectDestination picks the public output pair when the whitelist file name
// contains marker, the default pair otherwise. Only the base name is inspected.
func SelectDestination(whitelistPath, marker string, output config.OutputConfig) (config.Destination, bool) {
	if marker != "" && strings.Contains(filepath.Base(whitelistPath), marker) {
		return output.Public, true
	}
	return output.Default, false
}
