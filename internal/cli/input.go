package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	syntacticparser "github.com/sonnert/SyntacticParser"
)

func isStdinTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func isURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// loadModel loads the model at modelPath, or finds one when it is empty.
func loadModel(modelPath string, opts ...syntacticparser.Option) (*syntacticparser.Model, error) {
	if modelPath != "" {
		slog.Debug("Loading custom model", "path", modelPath)
		return syntacticparser.Load(modelPath, opts...)
	}
	m, err := syntacticparser.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w (train one with: syntacticparser train <treebank.conllu>)", err)
	}
	return m, nil
}

// fetch reads a URL, a file, or stdin when target is empty. It returns the
// body and its Content-Type ("" for files and stdin).
func fetch(target string) ([]byte, string, error) {
	if target == "" {
		slog.Debug("Reading from stdin")
		body, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, "", fmt.Errorf("stdin is empty")
		}
		return body, "", nil
	}
	if isURL(target) {
		resp, err := http.Get(target)
		if err != nil {
			return nil, "", fmt.Errorf("fetch URL: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("fetch URL: HTTP %d", resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", fmt.Errorf("read response: %w", err)
		}
		return body, resp.Header.Get("Content-Type"), nil
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return data, "", nil
}
