// Package sh provides the interactive shell driving a simulated
// display station.
package sh

import (
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/veletron/oled.go/pkg/oled"
	"github.com/veletron/oled.go/pkg/oled/station"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool

	Shell   *ishell.Shell
	Station *station.Station
}

const shellKey = "$shell"

var (
	// flags

	evalOnly bool
	refHz    int
	speedHz  int

	// commands
	commands = []*ishell.Cmd{
		&StateCmd,
		&ResetCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.IntVar(&refHz, "ref-hz", station.DefaultRefHz, "Reference clock frequency.")
	flag.IntVar(&speedHz, "speed-hz", station.DefaultSpeedHz, "Bus clock frequency.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell around a station.
func New(st *station.Station) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Station:     st,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("oled > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Exec runs a command on the station and prints the outcome.
func Exec(c *ishell.Context, cmd ...byte) error {
	s := ShellFrom(c)
	res, err := s.Station.Exec(cmd...)
	if err != nil {
		c.Err(err)
		return err
	}
	if res != oled.ResultSuccess {
		err = fmt.Errorf("command failed")
		c.Err(err)
		return err
	}
	c.Println("OK")
	return nil
}

// Reset replaces the station with a fresh one.
func (s *Shell) Reset() error {
	st, err := station.New(refHz, speedHz)
	if err != nil {
		return err
	}
	s.Station = st
	return nil
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// StateCmd shows the cursor and bus statistics.
	StateCmd = ishell.Cmd{
		Name:    "state",
		Aliases: []string{"st"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			row, col, visible := s.Station.Cursor()
			cursor := "off"
			if visible {
				cursor = "on"
			}
			dev := s.Station.Device()
			c.Printf("cursor %d,%d %s\n", row, col, cursor)
			c.Printf("bus: %d starts, %d stops, %d bytes\n",
				dev.Starts(), dev.Stops(), len(dev.Received()))
		},
	}

	// ResetCmd starts over with a fresh station.
	ResetCmd = ishell.Cmd{
		Name: "reset",
		Help: "",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).Reset(); err != nil {
				c.Err(err)
			}
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	st, err := station.New(refHz, speedHz)
	if err != nil {
		log.Fatalln(err)
	}
	New(st).Run(flag.Args()...)
}
