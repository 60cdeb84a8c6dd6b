// Package main provides the einsum command line tool.
package main

import (
	"flag"
	"fmt"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("einsum %s\n", version)
	case "run":
		runCmd(os.Args[2:])
	case "demo":
		demoCmd(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("einsum - Einstein summation over dense tensors")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  run        Contract tensors stored in SafeTensors files")
	fmt.Println("  demo       Write sample relation tensors to a directory")
	fmt.Println("")
	fmt.Println("Example:")
	fmt.Println("  einsum demo -dir out")
	fmt.Println("  einsum run -formula ij,jk->ik -csv out/r2.csv out/relations.safetensors:parent out/relations.safetensors:parent")
}

// newFlagSet returns a flag set that exits on parse errors.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.SetOutput(os.Stderr)
	return fs
}
