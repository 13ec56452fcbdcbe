package generator

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/hupe1980/fpstore/fingerprint"
)

// ErrProtocol is returned when the external program violates the line
// protocol.
var ErrProtocol = errors.New("generator: protocol violation")

// Exec runs an external program to generate fingerprints.
//
// The program is started once per batch as
//
//	<Path> <Args...> <kind tag> <nbits>
//
// and receives one structure per line on stdin. It must print exactly one
// hex encoded fingerprint per input line to stdout, in input order, and exit
// with status 0.
type Exec struct {
	Path string
	Args []string

	// Env, if non-nil, replaces the program's environment.
	Env []string

	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// NewExec returns an Exec for the command line name arg...
func NewExec(name string, arg ...string) *Exec {
	return &Exec{Path: name, Args: arg}
}

// Generate implements fingerprint.Generator.
func (e *Exec) Generate(ctx context.Context, kind fingerprint.Kind, structure string) (fingerprint.Fingerprint, error) {
	fps, err := e.GenerateBatch(ctx, kind, []string{structure})
	if err != nil {
		return nil, err
	}
	return fps[0], nil
}

// GenerateBatch implements fingerprint.BatchGenerator.
func (e *Exec) GenerateBatch(ctx context.Context, kind fingerprint.Kind, structures []string) ([]fingerprint.Fingerprint, error) {
	if len(structures) == 0 {
		return nil, nil
	}

	var stdin bytes.Buffer
	for _, s := range structures {
		if strings.ContainsAny(s, "\r\n") {
			return nil, fmt.Errorf("%w: structure %q contains a line break", ErrProtocol, s)
		}
		stdin.WriteString(s)
		stdin.WriteByte('\n')
	}

	args := append(append([]string(nil), e.Args...), kind.Tag(), strconv.Itoa(kind.NBits))
	cmd := exec.CommandContext(ctx, e.Path, args...)
	cmd.Env = e.Env
	cmd.Dir = e.Dir
	cmd.Stdin = &stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("run %s: %w: %s", e.Path, err, msg)
		}
		return nil, fmt.Errorf("run %s: %w", e.Path, err)
	}

	return parseOutput(&stdout, len(structures), kind.Span())
}

func parseOutput(stdout *bytes.Buffer, n, span int) ([]fingerprint.Fingerprint, error) {
	fps := make([]fingerprint.Fingerprint, 0, n)
	sc := bufio.NewScanner(stdout)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if len(fps) == n {
			return nil, fmt.Errorf("%w: more than %d output lines", ErrProtocol, n)
		}
		fp, err := fingerprint.ParseHex(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrProtocol, len(fps)+1, err)
		}
		if err := fingerprint.CheckWidth(span, fp); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrProtocol, len(fps)+1, err)
		}
		fps = append(fps, fp)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(fps) != n {
		return nil, fmt.Errorf("%w: expected %d output lines, got %d", ErrProtocol, n, len(fps))
	}
	return fps, nil
}
