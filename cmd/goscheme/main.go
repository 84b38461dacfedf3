// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

// Command goscheme is the read-eval-print driver for the goscheme
// interpreter: it loads any file arguments into a shared root
// environment, then opens an interactive prompt on standard input.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"fortio.org/cli"
	"fortio.org/log"
	"github.com/chzyer/readline"
	"golang.org/x/sync/errgroup"

	"github.com/kybp/goscheme/scheme"
)

var prompt = " * "

func main() {
	cli.MinArgs = 0
	cli.ArgsHelp = "[file ...]"
	cli.StringVar(&prompt, "prompt", prompt, "interactive prompt string")
	cli.Main()

	env := scheme.NewEnv(nil)
	scheme.InstallPrimitives(env)

	loadFiles(env, cli.RemainingArgs())
	repl(env)
}

// loadFiles loads every file argument into env in argument order, per
// spec.md §6: a file that cannot be opened produces an error and is
// skipped, and errors during evaluation do not halt the process.
// Reading and parsing are fanned out across an errgroup (per
// SPEC_FULL.md's domain-stack wiring of golang.org/x/sync) since that
// phase has no visible side effect, but every file's expressions are
// then evaluated into env back on this goroutine, strictly in argument
// order, so a later file can always see an earlier file's definitions
// exactly as spec.md requires.
func loadFiles(env *scheme.Env, files []string) {
	parsed := make([][]scheme.Value, len(files))
	readErrs := make([]error, len(files))
	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			parsed[i], readErrs[i] = readFile(file)
			return nil
		})
	}
	_ = g.Wait()

	for i, file := range files {
		for _, expr := range parsed[i] {
			if _, err := scheme.Eval(expr, env); err != nil {
				log.Errf("%s: %v", file, err)
			}
		}
		if err := readErrs[i]; err != nil {
			fmt.Fprintln(os.Stderr, file+": "+err.Error())
		}
	}
}

// readFile parses every top-level expression out of file into a
// slice, without evaluating any of them. If an error interrupts
// reading (the file can't be opened, or a syntax error past some valid
// prefix), the expressions already parsed are still returned alongside
// it, so loadFiles can evaluate the valid prefix before reporting the
// error.
func readFile(file string) ([]scheme.Value, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	reader := scheme.NewReader(fd)

	var exprs []scheme.Value
	for {
		expr, err := reader.Read()
		if errors.Is(err, scheme.ErrEOF) {
			return exprs, nil
		}
		if err != nil {
			return exprs, err
		}
		exprs = append(exprs, expr)
	}
}

// repl runs the interactive loop: prompt, read, eval, print, forever,
// until EOF on stdin (exit status 0). Grounded in the teacher's
// main.go input/handler split, generalized from panic/recover of
// lisp1_5.Error/EOF to returned *scheme.Error and scheme.ErrEOF.
//
// Lines are read with github.com/chzyer/readline for history and
// editing, and accumulated until the parenthesis count balances, so
// that a list spanning several lines reads as one expression before
// the buffer is handed to evalBuffered.
func repl(env *scheme.Env) {
	rl, err := readline.New(prompt)
	if err != nil {
		scanREPL(env, bufio.NewScanner(os.Stdin))
		return
	}
	defer rl.Close()

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF (Ctrl-D) or readline.ErrInterrupt
			os.Exit(0)
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
		if !balanced(buf.String()) {
			rl.SetPrompt("")
			continue
		}
		rl.SetPrompt(prompt)
		evalBuffered(env, buf.String())
		buf.Reset()
	}
}

// scanREPL is the fallback path used when readline.New fails, reading
// stdin line by line with bufio instead of readline.
func scanREPL(env *scheme.Env, sc *bufio.Scanner) {
	var buf strings.Builder
	for sc.Scan() {
		buf.WriteString(sc.Text())
		buf.WriteByte('\n')
		if !balanced(buf.String()) {
			continue
		}
		evalBuffered(env, buf.String())
		buf.Reset()
	}
	os.Exit(0)
}

// evalBuffered evaluates every complete top-level expression in text,
// in order, printing each result in turn. A buffer that balances
// parentheses can still hold more than one expression (e.g. two
// defines entered on one line), so the reader is driven to ErrEOF
// rather than read once, mirroring readFile's loop over a file.
func evalBuffered(env *scheme.Env, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	reader := scheme.NewReader(strings.NewReader(text))
	for {
		expr, err := reader.Read()
		if errors.Is(err, scheme.ErrEOF) {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		result, err := scheme.Eval(expr, env)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(scheme.Print(result))
	}
}

// balanced reports whether text contains no unmatched '(' outside of
// string literals, i.e. whether it is ready to be read as a complete
// expression.
func balanced(text string) bool {
	depth := 0
	inString := false
	escaped := false
	for _, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth <= 0
}
