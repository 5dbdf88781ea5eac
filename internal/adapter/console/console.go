package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	apperrors "user-crud-console/pkg/errors"
)

// MaxTokenSize is the longest token Next returns. Longer tokens are consumed
// and reported as an *errors.InputError.
const MaxTokenSize = 1 << 20

const (
	expectNumber    = "a number"
	expectShortText = "at most 1 MiB of text"

	// oversizedPrefix is how much of a dropped token is kept for logging.
	oversizedPrefix = 32
)

// Console reads whitespace-delimited tokens from an input stream and writes
// prompts and results to an output stream.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer

	discarding bool   // inside a token longer than MaxTokenSize
	oversized  string // prefix of the token being discarded
}

// New creates a Console over the given streams.
func New(in io.Reader, out io.Writer) *Console {
	c := &Console{out: out}
	c.scanner = bufio.NewScanner(in)
	c.scanner.Buffer(make([]byte, 0, 64*1024), 2*MaxTokenSize)
	c.scanner.Split(c.splitWords)
	return c
}

// splitWords behaves like bufio.ScanWords, except that a token growing past
// MaxTokenSize is dropped up to the next whitespace and reported as a single
// empty token.
func (c *Console) splitWords(data []byte, atEOF bool) (int, []byte, error) {
	if c.discarding {
		for i := 0; i < len(data); {
			r, width := utf8.DecodeRune(data[i:])
			if unicode.IsSpace(r) {
				c.discarding = false
				return i, []byte{}, nil
			}
			i += width
		}
		if atEOF {
			c.discarding = false
			return len(data), []byte{}, nil
		}
		return len(data), nil, nil
	}

	advance, token, err := bufio.ScanWords(data, atEOF)
	if token == nil && err == nil && len(data)-advance >= MaxTokenSize {
		c.discarding = true
		c.oversized = string(data[advance:advance+oversizedPrefix]) + "..."
		return len(data), nil, nil
	}
	return advance, token, err
}

// Printf writes formatted output.
func (c *Console) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// Println writes a line of output.
func (c *Console) Println(args ...any) {
	_, _ = fmt.Fprintln(c.out, args...)
}

// Next blocks until the next token is available. It returns io.EOF once the
// input is exhausted.
func (c *Console) Next() (string, error) {
	if c.scanner.Scan() {
		token := c.scanner.Text()
		if token == "" {
			return "", apperrors.NewInputError(c.oversized, expectShortText)
		}
		return token, nil
	}
	if err := c.scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return "", io.EOF
}

// Prompt prints label and reads one token.
func (c *Console) Prompt(label string) (string, error) {
	c.Printf("%s", label)
	return c.Next()
}

// PromptInt prints label and reads one token as a base-10 integer. A token
// that is not a number is consumed and reported as an *errors.InputError.
func (c *Console) PromptInt(label string) (int64, error) {
	token, err := c.Prompt(label)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, apperrors.NewInputError(token, expectNumber)
	}
	return n, nil
}
