// Command dmgo runs a Game Boy ROM headlessly: it drives the console's
// Cycle loop for a bounded number of cycles (or forever), optionally
// mirrors the serial port, and detects blargg-style pass/fail markers for
// use in CI.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/haldun/dmgo/internal/console"
	"github.com/haldun/dmgo/internal/cpu"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmgo"
	app.Description = "A headless DMG (original Game Boy) emulator core"
	app.Usage = "dmgo [options] <ROM file>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "path to the ROM file",
		},
		cli.StringFlag{
			Name:  "boot",
			Usage: "optional DMG boot ROM to run from 0x0000 until FF50 disables it",
		},
		cli.IntFlag{
			Name:  "cycles",
			Usage: "M-cycle budget (0 = unbounded until killed or a pass/fail marker is seen)",
			Value: 0,
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "accepted for parity with a future windowed mode; this build only supports headless",
		},
		cli.BoolFlag{
			Name:  "trace",
			Usage: "log every instruction's PC at debug level",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Usage: "wall-clock timeout, e.g. 30s (0 disables)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmgo failed", "error", err)
		os.Exit(1)
	}
}

// serialMirror writes bytes to stdout and keeps a running copy for
// blargg-style "Passed"/"Failed N tests" pattern detection.
type serialMirror struct {
	buf strings.Builder
}

func (s *serialMirror) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	s.buf.Write(p)
	return len(p), nil
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("read rom: %w", err)
	}

	co := console.New(rom)
	if bootPath := c.String("boot"); bootPath != "" {
		boot, err := os.ReadFile(bootPath)
		if err != nil {
			return fmt.Errorf("read boot rom: %w", err)
		}
		co.LoadBootROM(boot)
		slog.Info("loaded boot rom", "path", bootPath)
	}

	mirror := &serialMirror{}
	co.SetSerialSink(mirror)

	cycleBudget := c.Int("cycles")
	trace := c.Bool("trace")

	var deadline time.Time
	if timeout := c.Duration("timeout"); timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	slog.Info("starting run", "rom", romPath, "cycles", cycleBudget)
	start := time.Now()

	var totalCycles int
	exitCode, err := runLoop(co, cycleBudget, trace, deadline, mirror, &totalCycles)
	elapsed := time.Since(start)
	slog.Info("run finished", "cycles", totalCycles, "elapsed", elapsed.Truncate(time.Millisecond), "exit_code", exitCode)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

// runLoop drives Console.Cycle() until the cycle budget is exhausted, a
// deadline passes, a blargg pass/fail marker appears in the serial stream,
// or the CPU panics on an undefined opcode. It returns the process exit
// code spec.md §7 assigns to each outcome.
func runLoop(co *console.Console, cycleBudget int, trace bool, deadline time.Time, mirror *serialMirror, totalCycles *int) (exitCode int, err error) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(cpu.FatalError)
			if !ok {
				panic(r)
			}
			slog.Error("fatal cpu error", "pc", fmt.Sprintf("%#04x", fe.PC), "opcode", fmt.Sprintf("%#02x", fe.Opcode))
			exitCode = 1
			err = fe
		}
	}()

	for i := 0; cycleBudget == 0 || i < cycleBudget; {
		if trace {
			slog.Debug("step", "pc", fmt.Sprintf("%#04x", co.CPU.PC))
		}
		m := co.Cycle()
		i += m
		*totalCycles = i

		if detectPass(mirror.buf.String()) {
			return 0, nil
		}
		if detectFail(mirror.buf.String()) {
			return 1, nil
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return 2, nil
		}
	}
	return 0, nil
}

func detectPass(serial string) bool {
	return strings.Contains(strings.ToLower(serial), "passed")
}

func detectFail(serial string) bool {
	lower := strings.ToLower(serial)
	return strings.Contains(lower, "failed")
}
