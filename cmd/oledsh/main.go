package main

//go-build: CGO_ENABLED=0

import (
	"github.com/veletron/oled.go/pkg/cli/sh"

	_ "github.com/veletron/oled.go/pkg/cli/cmds/all"
)

func main() {
	sh.Main()
}
