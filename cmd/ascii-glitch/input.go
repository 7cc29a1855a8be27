package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const bannerText = ` ___  ___  ___ ___ ___
/ _ \/ __|/ __|_ _|_ _|
| (_) \__ \ (__ | | | |
\___/|___/\___|___|___|
  hover to glitch`

// readText picks the animated text: -text, then -file, then piped stdin, then the banner
func readText(text, file string, stdin *os.File) (string, error) {
	switch {
	case text != "":
		return text, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return trimText(string(data)), nil
	}

	if stdin != nil && isPipe(stdin) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("stdin: %w", err)
		}
		if t := trimText(string(data)); t != "" {
			return t, nil
		}
	}
	return bannerText, nil
}

func isPipe(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

// trimText drops trailing newlines and carriage returns; inner blank lines survive
func trimText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimRight(s, "\n")
}
