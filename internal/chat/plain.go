package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tvanier/garmin-coach/internal/llm"
)

// RunPlain is the line-oriented fallback used when stdout is not a
// terminal. Streamed chunks are printed as they arrive; "exit", "quit" or
// EOF ends the session.
func RunPlain(ctx context.Context, session *llm.Chat) error {
	return runPlain(ctx, session, os.Stdin, os.Stdout)
}

func runPlain(ctx context.Context, session *llm.Chat, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, styleInfo.Render("--- Garmin Running Analyst Connected ---"))
	fmt.Fprintln(out, "Type 'exit' or 'quit' to end the session.")
	fmt.Fprintln(out)

	lines := readLines(in)
	for {
		fmt.Fprint(out, styleUserLabel.Render("You: "))

		var message string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return nil
			}
			message = strings.TrimSpace(line)
		}
		if message == "" {
			continue
		}
		if strings.EqualFold(message, "exit") || strings.EqualFold(message, "quit") {
			fmt.Fprintln(out, styleInfo.Render("Goodbye!"))
			return nil
		}

		fmt.Fprint(out, styleCoachLabel.Render("Coach: "))
		_, err := session.Send(ctx, message, func(chunk string) {
			fmt.Fprint(out, chunk)
		})
		fmt.Fprintln(out)
		fmt.Fprintln(out)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintln(out, styleError.Render("Error during chat interaction."))
			return err
		}
	}
}

// readLines pumps input lines into a channel so the prompt loop can also
// observe context cancellation while waiting. The channel closes on EOF.
func readLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}
