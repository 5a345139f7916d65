// Command mit loads a Mit object file and runs it, optionally single-
// stepping with breakpoints the way the teacher's RunProgramDebugMode does.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	mit "github.com/rrthomas/smite/vm"
)

func main() {
	var (
		stackWords = flag.Int("stack-words", 1024, "stack capacity, in words")
		memoryKB   = flag.Int("memory-kb", 1024, "memory size, in kilobytes")
		loadAddr   = flag.Int("load-address", 0, "address to start execution at instead of the object file's base; the image is still loaded at its recorded base")
		debug      = flag.Bool("step", false, "single-step with a breakpoint prompt instead of running to completion")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mit [flags] object-file")
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "mit:", err)
		os.Exit(1)
	}

	s := mit.NewState(*stackWords, *memoryKB*1024)
	s.Args = flag.Args()
	traps := mit.NewTrapTable()
	traps.RegisterConsole(os.Stdout)
	s.Trap = traps.Handler()

	hdr, err := mit.LoadObject(s.Memory, data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mit:", err)
		os.Exit(1)
	}
	s.PC = mit.Word(hdr.BaseAddress)
	if *loadAddr != 0 {
		s.PC = mit.Word(*loadAddr)
	}

	var code mit.ErrorCode
	if *debug {
		code = runDebug(s)
	} else {
		code = s.Run()
	}

	if code != mit.OK {
		fmt.Fprintf(os.Stderr, "mit: %s (%d)\n", code, int32(code))
	}
	os.Exit(int(code))
}

// runDebug implements a minimal breakpoint REPL in the style of the
// teacher's RunProgramDebugMode: step, inspect, and continue on request.
func runDebug(s *mit.State) mit.ErrorCode {
	sc := bufio.NewScanner(os.Stdin)
	fmt.Fprintln(os.Stderr, "mit debug: (s)tep, (c)ontinue, (p)c/ir, (q)uit")
	for {
		fmt.Fprint(os.Stderr, "> ")
		if !sc.Scan() {
			return mit.Break
		}
		switch sc.Text() {
		case "s", "":
			if err := s.SingleStep(); err != mit.OK {
				return err
			}
		case "c":
			return s.Run()
		case "p":
			fmt.Fprintf(os.Stderr, "pc=%#x ir=%#x depth=%d\n", s.PC, s.IR, s.Stack.Depth())
		case "q":
			return mit.Break
		default:
			fmt.Fprintln(os.Stderr, "unrecognised command")
		}
	}
}
