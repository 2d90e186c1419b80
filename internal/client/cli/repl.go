package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// runREPL reads commands line by line until exit, EOF or ctx cancellation.
// It reads from the same buffered reader the prompts use so that answers
// typed ahead are not swallowed.
func runREPL(ctx context.Context, a *App) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(a.out, "runnio %s> ", a.status())

		line, err := a.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			a.log.Error(ctx, "read input", "error", err)
			return
		}
		if quit := a.exec(ctx, strings.TrimSpace(line)); quit {
			a.info("Bye!")
			return
		}
		if err != nil {
			fmt.Fprintln(a.out)
			return
		}
	}
}
