package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oisee/bf-zkvm/pkg/debug"
	"github.com/oisee/bf-zkvm/pkg/events"
	"github.com/oisee/bf-zkvm/pkg/executor"
	"github.com/oisee/bf-zkvm/pkg/isa"
)

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl <source.bf>",
		Short: "Step through a program's recorded execution interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			program, err := isa.Parse(string(src))
			if err != nil {
				return err
			}
			record, err := executor.Run(program, nil)
			if err != nil {
				return err
			}
			return runRepl(record)
		},
	}
}

func runRepl(record *events.ExecutionRecord) error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println("bfvm repl — type 'help' for commands")
	}

	dbg := debug.New(record, nil)
	lua := debug.NewLuaEvaluator()
	defer lua.Close()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("(bfvm) ")
		if err != nil {
			return nil
		}
		line.AppendHistory(input)
		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "step", "s":
			ev, ok := dbg.Step()
			if !ok {
				fmt.Println("end of trace")
				continue
			}
			printEvent(ev)
		case "continue", "c":
			ev, stopped, ok := dbg.Continue()
			if !ok {
				fmt.Println("end of trace")
				continue
			}
			if stopped {
				fmt.Println("stopped at:")
				printEvent(ev)
			}
		case "break", "b":
			if len(fields) != 2 {
				fmt.Println("usage: break <pc>")
				continue
			}
			pc, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("invalid pc:", fields[1])
				continue
			}
			dbg.SetBreakpoint(uint32(pc))
		case "eval":
			expr := strings.Join(fields[1:], " ")
			hist := dbg.History()
			if len(hist) == 0 {
				fmt.Println("no current cycle; step first")
				continue
			}
			result, err := lua.EvaluateCondition(expr, hist[len(hist)-1].Event)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(result)
		case "dump":
			hist := dbg.History()
			if len(hist) == 0 {
				fmt.Println("no current cycle; step first")
				continue
			}
			spew.Dump(hist[len(hist)-1].Event)
		case "help":
			fmt.Println("step|s, continue|c, break|b <pc>, eval <lua-expr>, dump, quit")
		case "quit", "q":
			return nil
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func printEvent(ev events.CpuEvent) {
	fmt.Printf("pc=%d mp=%d mv=%d clk=%d\n", ev.Pc, ev.Mp, ev.Mv, ev.Clk)
}
