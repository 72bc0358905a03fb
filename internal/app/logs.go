package app

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"
)

// TailLog returns the last n lines of the controller log, optionally
// keeping only lines containing filter (case-insensitive). A missing log
// file yields no lines and no error — the producer may simply not have
// logged anything yet.
func TailLog(path string, n int, filter string) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	needle := strings.ToLower(filter)

	// Ring over the scan keeps memory bounded by n, not by file size.
	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if needle != "" && !strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		if len(ring) == n {
			copy(ring, ring[1:])
			ring = ring[:n-1]
		}
		ring = append(ring, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ring, nil
}
