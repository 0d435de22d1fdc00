// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command slhdsa generates SLH-DSA keys, signs and verifies files.
//
// Keys and signatures are read and written as standard base64.
//
//	slhdsa keygen -params SLH-DSA-SHA2-128f -out alice
//	slhdsa sign -params SLH-DSA-SHA2-128f -key alice.priv -in msg.txt > msg.sig
//	slhdsa verify -params SLH-DSA-SHA2-128f -pub alice.pub -in msg.txt -sig msg.sig
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

// errVerificationFailed makes verify exit with status 1 without a log line.
var errVerificationFailed = errors.New("signature verification failed")

type command struct {
	name    string
	summary string
	run     func(env *env, args []string) error
}

// env holds the process streams so commands can be tested.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

func commands() []command {
	return []command{
		{"keygen", "generate a key pair", runKeygen},
		{"pubkey", "print the public key of a private key", runPubkey},
		{"sign", "sign a message", runSign},
		{"verify", "verify a signature", runVerify},
		{"fingerprint", "print the BLAKE3 fingerprint of a public key", runFingerprint},
		{"params", "list the parameter sets", runParams},
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: slhdsa <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands() {
		fmt.Fprintf(w, "  %-12s %s\n", c.name, c.summary)
	}
}

// run executes the command line args and returns the exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	e := &env{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: log.New(stderr, "slhdsa: ", 0),
	}
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	for _, c := range commands() {
		if c.name != args[0] {
			continue
		}
		err := c.run(e, args[1:])
		switch {
		case err == nil:
			return 0
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errVerificationFailed):
			fmt.Fprintln(stdout, "FAILED")
			return 1
		default:
			e.logger.Printf("%s: %v", c.name, err)
			return 1
		}
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(stdout)
		return 0
	}
	e.logger.Printf("unknown command %q", args[0])
	usage(stderr)
	return 2
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
