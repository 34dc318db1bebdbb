// Package all pulls in every command provider.
package all

import (
	_ "github.com/veletron/oled.go/pkg/cli/cmds/display"
)
