// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/h8core/govern"
	"github.com/jetsetilly/h8core/hardware"
	"github.com/jetsetilly/h8core/hardware/memory"
	"github.com/jetsetilly/h8core/hardware/preferences"
	"github.com/jetsetilly/h8core/hardware/stimulus"
	"github.com/jetsetilly/h8core/logger"
	"github.com/jetsetilly/h8core/modalflag"
	"github.com/jetsetilly/h8core/prefs"
	"github.com/jetsetilly/h8core/rewind"
	"github.com/jetsetilly/h8core/statsview"
	"github.com/jetsetilly/h8core/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitVal := launch(ctx)
	stop()
	os.Exit(exitVal)
}

// launch parses the command line and runs the selected mode. the return
// value is the exit status of the program.
func launch(ctx context.Context) int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PREFS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md)

	case "PREFS":
		err = showPrefs(md)

	case "VERSION":
		v, r, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, v, r)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// loadPrefs returns the disk backed preferences for the hardware and the
// rewind system. if the preferences file is not available the default
// preferences are used.
func loadPrefs() (*preferences.Preferences, *rewind.Preferences) {
	hw, err := preferences.NewPreferences()
	if err != nil {
		logger.Logf(logger.Allow, "h8core", "using default hardware preferences: %v", err)
		hw = preferences.DefaultPreferences()
	}
	rw, err := rewind.NewPreferences()
	if err != nil {
		logger.Logf(logger.Allow, "h8core", "using default rewind preferences: %v", err)
		rw = rewind.DefaultPreferences()
	}
	return hw, rw
}

func run(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	variant := md.AddString("variant", "", "chip preset. the default is taken from the preferences")
	cycles := md.AddUint64("cycles", 1000000, "number of cycles to run")
	quantum := md.AddInt64("quantum", hardware.DefaultQuantum, "number of cycles in each call to the core")
	stimulusFile := md.AddString("stimulus", "", "starlark script of scheduled events")
	saveState := md.AddString("savestate", "", "save the board to file at the end of the run")
	loadState := md.AddString("loadstate", "", "restore the board from file before the run")
	rewindTo := md.AddInt64("rewind", -1, "rewind to the cycle after the run and verify the replay")
	memvizFile := md.AddString("memviz", "", "write a graph of the core state to file at the end of the run")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	prefsOverride := md.AddString("prefs", "", "preferences override. eg. \"h8.variant::H8/3002; rewind.snapshotFreq::5000\"")

	var stats *bool
	var statsAddr *string
	if statsview.Available() {
		stats = md.AddBool("statsview", false, "run stats server for the Go runtime")
		statsAddr = md.AddString("statsaddr", statsview.DefaultAddress, "address of the stats server")
	}

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if stats != nil && *stats {
		sctx, stopStats := context.WithCancel(ctx)
		defer stopStats()
		statsview.Launch(sctx, os.Stdout, *statsAddr)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("program image required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *prefsOverride != "" {
		prefs.PushCommandLineStack(*prefsOverride)
	}
	hwPrefs, rwPrefs := loadPrefs()
	if *prefsOverride != "" {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			fmt.Printf("! unused preferences: %s\n", unused)
		}
	}

	if *variant != "" {
		if err := hwPrefs.Variant.Set(*variant); err != nil {
			return err
		}
	}

	img, err := os.ReadFile(md.GetArg(0))
	if err != nil {
		return err
	}

	b, err := hardware.NewBoard(hwPrefs)
	if err != nil {
		return err
	}
	if err := b.SetQuantum(*quantum); err != nil {
		return err
	}
	if err := b.LoadImage(img); err != nil {
		return err
	}

	if *stimulusFile != "" {
		stm, err := stimulus.Load(*stimulusFile, nil)
		if err != nil {
			return err
		}
		if err := b.AttachStimulus(stm); err != nil {
			return err
		}
	}

	if *loadState != "" {
		f, err := os.Open(*loadState)
		if err != nil {
			return err
		}
		err = b.Restore(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	var rw *rewind.Rewind
	var trace []memory.Access
	if *rewindTo >= 0 {
		rw = rewind.NewRewind(b, b, rwPrefs)
		b.Mem.SetTracer(func(a memory.Access) {
			if a.Cycle >= uint64(*rewindTo) {
				trace = append(trace, a)
			}
		})
	}

	continueCheck := func() (govern.State, error) {
		if ctx.Err() != nil {
			return govern.Ending, nil
		}
		if rw != nil {
			rw.Check()
		}
		return govern.Running, nil
	}

	runErr := b.Run(*cycles, continueCheck)
	if runErr != nil && ctx.Err() == nil {
		fmt.Printf("! %v\n", runErr)
	}

	printSummary(os.Stdout, b)

	if rw != nil {
		if err := verifyRewind(b, rw, uint64(*rewindTo), trace); err != nil {
			return err
		}
	}

	if *saveState != "" {
		var buf bytes.Buffer
		if err := b.Save(&buf); err != nil {
			return err
		}
		if err := os.WriteFile(*saveState, buf.Bytes(), 0o644); err != nil {
			return err
		}
	}

	if *memvizFile != "" {
		f, err := os.Create(*memvizFile)
		if err != nil {
			return err
		}
		memviz.Map(f, b.CPU.Snapshot())
		if err := f.Close(); err != nil {
			return err
		}
	}

	return nil
}

// verifyRewind rewinds the board to the cycle and runs it to the end of the
// original run. the memory accesses of the replay must match the accesses
// made by the original run over the same period.
func verifyRewind(b *hardware.Board, rw *rewind.Rewind, cycle uint64, trace []memory.Access) error {
	end := b.Cycles()

	var replay []memory.Access
	b.Mem.SetTracer(nil)
	from, err := rw.GotoCycle(cycle)
	if err != nil {
		return err
	}
	b.Mem.SetTracer(func(a memory.Access) {
		replay = append(replay, a)
	})
	defer b.Mem.SetTracer(nil)

	if err := b.RunTo(end); err != nil && !b.CPU.Illegal() {
		return err
	}

	// the original trace from the first access of the replay
	if len(replay) > 0 {
		i := slices.IndexFunc(trace, func(a memory.Access) bool {
			return a.Cycle >= replay[0].Cycle
		})
		if i < 0 {
			trace = nil
		} else {
			trace = trace[i:]
		}
	} else {
		trace = nil
	}

	if !slices.Equal(trace, replay) {
		n := min(len(trace), len(replay))
		for i := range n {
			if trace[i] != replay[i] {
				return fmt.Errorf("rewind: replay from %d differs at %s (expected %s)", from, replay[i], trace[i])
			}
		}
		return fmt.Errorf("rewind: replay from %d made %d accesses (expected %d)", from, len(replay), len(trace))
	}

	fmt.Printf("rewind to %d verified with %d accesses\n", from, len(replay))
	return nil
}

// showPrefs prints the preferences as they are stored on disk.
func showPrefs(md *modalflag.Modes) error {
	md.NewMode()
	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	hw, err := preferences.NewPreferences()
	if err != nil {
		return err
	}
	rw, err := rewind.NewPreferences()
	if err != nil {
		return err
	}

	fmt.Println(hw.String())
	fmt.Println(rw.String())
	return nil
}
