package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/model"
)

// promptConfirmer asks on out and reads a y/N answer from in.
func promptConfirmer(in io.Reader, out io.Writer) dashboard.Confirmer {
	reader := bufio.NewReader(in)
	return dashboard.ConfirmFunc(func(ctx context.Context, task model.PriorityTask) (bool, error) {
		fmt.Fprintf(out, "Mark %q as completed? [y/N] ", task.Task.Title)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("read confirmation: %w", err)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	})
}
