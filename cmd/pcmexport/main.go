// SPDX-License-Identifier: EPL-2.0

// Command pcmexport converts speech or audio files to 16-bit PCM, WAV or
// C headers, and serves the same pipeline over HTTP.
//
//	pcmexport serve [-config file]
//	pcmexport convert -in file [-out dir] [-rate n] [-channels n] [-format bin|header|wav]
//	pcmexport synth -text s [-voice v] [-out dir] [-format bin|header|wav]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

const usage = `usage: pcmexport <command> [flags]

commands:
  serve     run the HTTP service
  convert   convert an audio file
  synth     synthesize speech

run "pcmexport <command> -h" for the flags of a command.
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one sub-command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "serve":
		err = serveCmd(ctx, args[1:], stderr)
	case "convert":
		err = convertCmd(ctx, args[1:], stdout, stderr)
	case "synth":
		err = synthCmd(ctx, args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		return 2
	default:
		fmt.Fprintln(stderr, "pcmexport:", err)
		return 1
	}
}
