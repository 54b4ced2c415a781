// btc-groundtruth CLI - Bitcoin Script and sighash ground-truth generator
//
// This CLI produces the artifacts an external verifier needs to check
// its own reimplementation of Bitcoin Script execution and BIP143
// sighash computation: a golden test-vector suite for the OP_CAT
// enabled interpreter, and verification records built from real Signet
// transactions.
//
// Example usage:
//   # Write the golden script test vectors
//   btc-groundtruth generate -o test_vectors/bitcoin_ground_truth.json
//
//   # Fetch a Signet transaction and build a verification record
//   btc-groundtruth fetch <txid> -input 0
//
//   # Print the OP_CAT demo fixture (no network required)
//   btc-groundtruth demo
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btcutil"

	"github.com/suffix-labs/btc-groundtruth/pkg/explorer"
	"github.com/suffix-labs/btc-groundtruth/pkg/vectors"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "generate":
		cmdGenerate(os.Args[2:])
	case "fetch":
		cmdFetch(os.Args[2:])
	case "demo":
		cmdDemo(os.Args[2:])
	case "version":
		cmdVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`btc-groundtruth - Bitcoin Script and sighash ground-truth generator

Usage:
  btc-groundtruth <command> [options]

Commands:
  generate [-o file]                     Write the golden script test-vector suite
  fetch <txid> [-input n] [-api url]     Build a verification record from a real transaction
  demo [-o file]                         Print the OP_CAT equality-check demo fixture
  version                                Show version information
  help                                   Show this help message

Examples:
  # Generate the script interpreter test vectors
  btc-groundtruth generate -o bitcoin_ground_truth.json

  # Fetch input 0 of a Signet transaction
  btc-groundtruth fetch 4d3a... -input 0 -o verify.json

  # Use a different explorer endpoint
  btc-groundtruth fetch 4d3a... -api https://mempool.space/signet/api`)
}

func cmdVersion() {
	fmt.Println("btc-groundtruth v0.1.0")
	fmt.Println("Ground-truth generator for Bitcoin Script (with OP_CAT) and BIP143 sighashes")
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	outPath := fs.String("o", "", "output file (default: stdout)")
	fs.Parse(args)

	suite := vectors.GenerateSuite()

	if *outPath != "" {
		if err := suite.WriteFile(*outPath); err != nil {
			fatalf("writing vectors: %v", err)
		}
		succeeded := 0
		for _, v := range suite.TestVectors {
			if v.ExpectedError == "" {
				succeeded++
			}
		}
		fmt.Fprintf(os.Stderr, "Generated %d test vectors to %s (%d success, %d error cases)\n",
			len(suite.TestVectors), *outPath,
			succeeded, len(suite.TestVectors)-succeeded)
		return
	}

	if err := suite.Encode(os.Stdout); err != nil {
		fatalf("encoding vectors: %v", err)
	}
}

func cmdFetch(args []string) {
	if len(args) < 1 || args[0] == "" {
		fmt.Fprintln(os.Stderr, "Error: transaction ID required")
		fmt.Fprintln(os.Stderr, "Usage: btc-groundtruth fetch <txid> [-input n] [-api url] [-o file]")
		os.Exit(1)
	}
	txid := args[0]

	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	inputIndex := fs.Int("input", 0, "input index to verify")
	apiBase := fs.String("api", explorer.DefaultAPI, "explorer API base URL")
	outPath := fs.String("o", "", "output file (default: stdout)")
	fs.Parse(args[1:])

	client := explorer.NewClient(*apiBase)

	fmt.Fprintf(os.Stderr, "Fetching transaction %s...\n", txid)
	tx, err := client.Transaction(txid)
	if err != nil {
		fatalf("%v", err)
	}

	if *inputIndex < 0 || *inputIndex >= len(tx.Inputs) {
		fatalf("input index %d out of range (tx has %d inputs)", *inputIndex, len(tx.Inputs))
	}
	in := tx.Inputs[*inputIndex]

	prevValue, prevScript, err := client.PrevOutput(in.PrevOut.Hash.String(), in.PrevOut.Index)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(os.Stderr, "Previous output %s:%d spends %s\n",
		in.PrevOut.Hash, in.PrevOut.Index, btcutil.Amount(prevValue))

	record, err := explorer.BuildRecord(tx, txid, *inputIndex, prevValue, prevScript)
	if err != nil {
		fatalf("%v", err)
	}

	writeJSON(record, *outPath)
}

func cmdDemo(args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	outPath := fs.String("o", "", "output file (default: stdout)")
	fs.Parse(args)

	demo, err := explorer.Demo()
	if err != nil {
		fatalf("%v", err)
	}

	writeJSON(demo, *outPath)
}

// writeJSON writes v as indented JSON to path, or stdout when path is
// empty.
func writeJSON(v interface{}, path string) {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			fatalf("creating %s: %v", path, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatalf("encoding output: %v", err)
	}
	if path != "" {
		fmt.Fprintf(os.Stderr, "Data written to %s\n", path)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
