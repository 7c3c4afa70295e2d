package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Faultbox/dtm2stl/internal/config"
)

// errNoInput is returned when the prompt reaches end of input.
var errNoInput = errors.New("no terrain file given")

// promptPath asks for a terrain file until an existing file is entered.
func promptPath(r io.Reader, w io.Writer) (string, error) {
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprintln(w, "Enter path to terrain file:")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", errNoInput
		}

		path := config.ExpandPath(strings.TrimSpace(sc.Text()))
		if path == "" {
			continue
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		fmt.Fprintf(w, "%s not found.\n", path)
	}
}
