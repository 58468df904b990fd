package pass

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/deeponelabs/deepone-go/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

const DefaultPrefix = "deepone"

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps values in the pass password store under prefix/group/key.
// Values are base64 encoded since pass entries are text.
type Store struct {
	prefix string
	run    runFunc
}

var _ ports.SecureStore = (*Store)(nil)

func NewStore(prefix string) *Store {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultPrefix
	}
	return &Store{prefix: prefix, run: runPassCommand}
}

func (s *Store) Put(ctx context.Context, group string, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry := s.entry(group, key)
	_, stderr, err := s.run(ctx, base64.StdEncoding.EncodeToString(value)+"\n", "insert", "-m", "-f", entry)
	if err != nil {
		return formatError("put", entry, err, stderr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, group string, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry := s.entry(group, key)
	stdout, stderr, err := s.run(ctx, "", "show", entry)
	if err != nil {
		if isNotFound(stderr) {
			return nil, fmt.Errorf("pass get %q: %w", entry, domain.ErrSecretNotFound)
		}
		return nil, formatError("get", entry, err, stderr)
	}

	stdout = strings.TrimSuffix(stdout, "\n")
	stdout = strings.TrimSuffix(stdout, "\r")

	value, err := base64.StdEncoding.DecodeString(stdout)
	if err != nil {
		return nil, fmt.Errorf("decode pass entry %q: %w", entry, err)
	}

	return value, nil
}

func (s *Store) Delete(ctx context.Context, group string, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry := s.entry(group, key)
	_, stderr, err := s.run(ctx, "", "rm", "-f", entry)
	if err != nil {
		if isNotFound(stderr) {
			return nil
		}
		return formatError("delete", entry, err, stderr)
	}

	return nil
}

func (s *Store) entry(group string, key string) string {
	return path.Join(s.prefix, group, key)
}

func isNotFound(stderr string) bool {
	return strings.Contains(stderr, "is not in the password store")
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	binary, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(op string, entry string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, entry, err)
	}

	return fmt.Errorf("pass %s %q: %w: %s", op, entry, err, stderr)
}
