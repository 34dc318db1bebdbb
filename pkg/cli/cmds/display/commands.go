package display

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/veletron/oled.go/pkg/cli/sh"
	"github.com/veletron/oled.go/pkg/oled"
)

var (
	// InitCmd runs the power-up sequence.
	InitCmd = ishell.Cmd{
		Name:    "init",
		Aliases: []string{"i"},
		Help:    "",
		Func: func(c *ishell.Context) {
			sh.Exec(c, byte(oled.CommandInit))
		},
	}

	// OnCmd turns the display on.
	OnCmd = ishell.Cmd{
		Name: "on",
		Help: "",
		Func: func(c *ishell.Context) {
			sh.Exec(c, byte(oled.CommandDisplayOn))
		},
	}

	// OffCmd turns the display off.
	OffCmd = ishell.Cmd{
		Name: "off",
		Help: "",
		Func: func(c *ishell.Context) {
			sh.Exec(c, byte(oled.CommandDisplayOff))
		},
	}

	// ClsCmd clears the screen.
	ClsCmd = ishell.Cmd{
		Name: "cls",
		Help: "",
		Func: func(c *ishell.Context) {
			sh.Exec(c, byte(oled.CommandCls))
		},
	}

	// LocateCmd moves the cursor.
	LocateCmd = ishell.Cmd{
		Name:    "locate",
		Aliases: []string{"loc"},
		Help:    "ROW COL (1-16, 0 keeps the axis)",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("ROW and COL required"))
				return
			}
			row, err := parsePos(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("invalid ROW: %v", err))
				return
			}
			col, err := parsePos(c.Args[1])
			if err != nil {
				c.Err(fmt.Errorf("invalid COL: %v", err))
				return
			}
			sh.Exec(c, byte(oled.CommandLocate), row, col)
		},
	}

	// PrintCmd prints text at the cursor.
	PrintCmd = ishell.Cmd{
		Name:    "print",
		Aliases: []string{"p"},
		Help:    "TEXT",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("TEXT required"))
				return
			}
			text := strings.Join(c.Args, " ")
			sh.Exec(c, oled.PrintRequest([]byte(text))...)
		},
	}

	// CursorCmd switches the cursor on or off.
	CursorCmd = ishell.Cmd{
		Name: "cursor",
		Help: "on|off",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("on or off required"))
				return
			}
			switch c.Args[0] {
			case "on":
				sh.Exec(c, byte(oled.CommandCursorOn))
			case "off":
				sh.Exec(c, byte(oled.CommandCursorOff))
			default:
				c.Err(fmt.Errorf("on or off required"))
			}
		},
	}

	// IDCmd reads the status register and prints it on screen.
	IDCmd = ishell.Cmd{
		Name: "id",
		Help: "",
		Func: func(c *ishell.Context) {
			sh.Exec(c, byte(oled.CommandID))
		},
	}

	// PrintByteCmd shows a byte in hex at the cursor.
	PrintByteCmd = ishell.Cmd{
		Name:    "printbyte",
		Aliases: []string{"pb"},
		Help:    "HEX",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("HEX byte required"))
				return
			}
			b, err := hex.DecodeString(c.Args[0])
			if err != nil || len(b) != 1 {
				c.Err(fmt.Errorf("invalid HEX byte %q", c.Args[0]))
				return
			}
			sh.Exec(c, byte(oled.CommandPrintByte), b[0])
		},
	}
)

func parsePos(arg string) (uint8, error) {
	val, err := strconv.ParseUint(arg, 10, 8)
	if err != nil {
		return 0, err
	}
	if val > 16 {
		return 0, fmt.Errorf("%d out of range", val)
	}
	return uint8(val), nil
}

func init() {
	sh.AddCmds(
		&InitCmd,
		&OnCmd,
		&OffCmd,
		&ClsCmd,
		&LocateCmd,
		&PrintCmd,
		&CursorCmd,
		&IDCmd,
		&PrintByteCmd,
	)
}
