//go:build !mobile

package utils

import "os"

// MobileEmulateEnv forces mobile behavior on desktop builds when set to "1".
const MobileEmulateEnv = "BEARSCENE_MOBILE_EMULATE"

// IsMobile reports whether the binary runs as the mobile binding.
// Desktop builds return false unless MobileEmulateEnv is set.
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
