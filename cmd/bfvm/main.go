// Command bfvm is the CLI front end over pkg/sdk: execute, prove,
// verify, setup, and a short list of bundled example programs.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/oisee/bf-zkvm/pkg/sdk"
	"github.com/oisee/bf-zkvm/pkg/version"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "bfvm",
		Short:   "Brainfuck zkVM executor and prover",
		Version: version.Version,
	}
	root.AddCommand(executeCmd(), proveCmd(), verifyCmd(), setupCmd(), examplesCmd(), replCmd())
	return root
}

func executeCmd() *cobra.Command {
	var stdinPath string
	cmd := &cobra.Command{
		Use:   "execute <source.bf>",
		Short: "Run a program and print its stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			stdin, err := readStdin(stdinPath)
			if err != nil {
				return err
			}
			out, err := sdk.Execute(string(src), stdin)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&stdinPath, "stdin", "", "path to a file of input bytes (default: none)")
	return cmd
}

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup <source.bf>",
		Short: "Generate and report on a (proving key, verifying key) pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			_, vk, err := sdk.Setup(string(src))
			if err != nil {
				return err
			}
			slog.Info("setup complete", "chips", len(vk.ChipInfos))
			for _, info := range vk.ChipInfos {
				fmt.Printf("%-20s width=%d\n", info.Name, info.Width)
			}
			return nil
		},
	}
}

func proveCmd() *cobra.Command {
	var stdinPath string
	cmd := &cobra.Command{
		Use:   "prove <source.bf>",
		Short: "Execute and prove a program, reporting the CPU trace height, chip count and public output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			stdin, err := readStdin(stdinPath)
			if err != nil {
				return err
			}
			pk, vk, err := sdk.Setup(string(src))
			if err != nil {
				return err
			}
			proof, err := sdk.Prove(pk, stdin)
			if err != nil {
				return err
			}
			if err := sdk.Verify(proof, vk); err != nil {
				return fmt.Errorf("self-check failed: %w", err)
			}
			fmt.Printf("proved a %d-row CPU trace across %d chips, public output: %q\n", proof.Shard.CpuHeight, len(proof.Shard.ChipOrder), proof.PublicValues)
			return nil
		},
	}
	cmd.Flags().StringVar(&stdinPath, "stdin", "", "path to a file of input bytes (default: none)")
	return cmd
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <source.bf>",
		Short: "Execute, prove, and verify a program end to end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			pk, vk, err := sdk.Setup(string(src))
			if err != nil {
				return err
			}
			proof, err := sdk.Prove(pk, nil)
			if err != nil {
				return err
			}
			if err := sdk.Verify(proof, vk); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}
}

func examplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List the bundled example programs under testdata/",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("testdata/hello.bf      - prints \"Hello World!\\n\"")
			fmt.Println("testdata/fibonacci.bf  - prints the Fibonacci sequence")
			return nil
		},
	}
}

func readStdin(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	return os.ReadFile(path)
}
