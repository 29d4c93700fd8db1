// remap - REMAP mapping library CLI tool
//
// Usage:
//
//	remap fmt [file]            Pretty-print JSON
//	remap min [file]            Minify JSON
//	remap get <path> [file]     Resolve a dotted key path and print the value
//	remap to-msgpack [file]     Convert JSON to MessagePack (binary on stdout)
//	remap from-msgpack [file]   Convert MessagePack to JSON
//	remap blob [file]           Pack JSON into a compressed blob (binary on stdout)
//	remap unblob [file]         Unpack a compressed blob back to JSON
//	remap dump [file]           Dump the parsed value tree (debug)
//	remap version               Print version info
//
// If no file is given, reads from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/Neumenon/remap/msgpack"
	"github.com/Neumenon/remap/remap"
)

const libVersion = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	// "get" consumes the path argument first
	pathArg := ""
	if cmd == "get" {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "remap get: missing path argument")
			os.Exit(1)
		}
		pathArg = args[0]
		args = args[1:]
	}

	var input io.Reader = os.Stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	switch cmd {
	case "fmt":
		v := parseInput(input)
		fmt.Println(remap.SerializePretty(v))
	case "min":
		v := parseInput(input)
		fmt.Println(remap.Serialize(v))
	case "get":
		cmdGet(input, pathArg)
	case "to-msgpack":
		cmdToMsgpack(input)
	case "from-msgpack":
		cmdFromMsgpack(input)
	case "blob":
		cmdBlob(input)
	case "unblob":
		cmdUnblob(input)
	case "dump":
		v := parseInput(input)
		spew.Fdump(os.Stdout, v)
	case "version", "-v", "--version":
		fmt.Printf("remap %s\n", libVersion)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `remap - JSON mapping CLI tool

Usage:
  remap fmt [file]            Pretty-print JSON
  remap min [file]            Minify JSON
  remap get <path> [file]     Resolve a dotted key path and print the value
  remap to-msgpack [file]     Convert JSON to MessagePack (binary on stdout)
  remap from-msgpack [file]   Convert MessagePack to JSON
  remap blob [file]           Pack JSON into a compressed blob (binary on stdout)
  remap unblob [file]         Unpack a compressed blob back to JSON
  remap dump [file]           Dump the parsed value tree (debug)
  remap version               Print version info

Paths are dotted; numeric segments index arrays.

Examples:
  echo '{"distance":{"value":31}}' | remap get distance.value
  # Output: 31

  echo '{"distances":[{"value":31}]}' | remap get distances.0.value
  # Output: 31

  cat data.json | remap blob > data.blob
  remap unblob data.blob

If no file is given, reads from stdin.
`)
}

func parseInput(r io.Reader) *remap.Value {
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}
	v, err := remap.ParseBytes(data)
	if err != nil {
		fatal("parse: %v", err)
	}
	return v
}

func cmdGet(r io.Reader, rawPath string) {
	v := parseInput(r)
	path, err := remap.SplitKey(rawPath, ".", true)
	if err != nil {
		fatal("path: %v", err)
	}
	got := remap.Resolve(v, path)
	if got == nil {
		fatal("path %q: absent", rawPath)
	}
	fmt.Println(remap.Serialize(got))
}

func cmdToMsgpack(r io.Reader) {
	v := parseInput(r)
	data, err := msgpack.Encode(v)
	if err != nil {
		fatal("msgpack encode: %v", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		fatal("write output: %v", err)
	}
}

func cmdFromMsgpack(r io.Reader) {
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}
	v, err := msgpack.Decode(data)
	if err != nil {
		fatal("msgpack decode: %v", err)
	}
	fmt.Println(remap.SerializePretty(v))
}

func cmdBlob(r io.Reader) {
	v := parseInput(r)
	data, err := remap.EncodeBlob(v)
	if err != nil {
		fatal("blob: %v", err)
	}
	fmt.Fprintln(os.Stderr, remap.BlobCID(data))
	if _, err := os.Stdout.Write(data); err != nil {
		fatal("write output: %v", err)
	}
}

func cmdUnblob(r io.Reader) {
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}
	v, err := remap.DecodeBlob(data)
	if err != nil {
		fatal("unblob: %v", err)
	}
	fmt.Println(remap.SerializePretty(v))
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "remap: "+format+"\n", args...)
	os.Exit(1)
}
