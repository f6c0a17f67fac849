package common

import (
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner for long-running commands
func PrintBanner() {
	banner.PrintSimple("vatscope", GetFullVersion())
}
