package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	syntacticparser "github.com/sonnert/SyntacticParser"
	"github.com/sonnert/SyntacticParser/internal/corpus"
	"github.com/sonnert/SyntacticParser/internal/headline"
)

func (c *CLI) newHeadlinesCommand() *cobra.Command {
	var modelPath string
	var asJSON bool
	var beam beamFlags

	cmd := &cobra.Command{
		Use:   "headlines [url-or-file]",
		Short: "Split headlines into the nouns left and right of their main verb",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Headlines from a web page (title and h1-h3)
  syntacticparser headlines https://example.com/news

  # One headline per line
  syntacticparser headlines headlines.txt
  echo "Council approves budget" | syntacticparser headlines`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			} else if isStdinTerminal() {
				return cmd.Help()
			}
			b, err := beam.beam()
			if err != nil {
				return err
			}
			data, contentType, err := fetch(target)
			if err != nil {
				return err
			}
			m, err := loadModel(modelPath, syntacticparser.WithBeam(b))
			if err != nil {
				return err
			}

			var analyses []*headline.Analysis
			if isHTML(target, contentType, data) {
				analyses, err = m.AnalyzeHTML(bytes.NewReader(data), contentType)
			} else {
				analyses, err = analyzeLines(m, data)
			}
			if err != nil {
				return err
			}

			if asJSON {
				output, _ := json.MarshalIndent(analyses, "", "  ")
				fmt.Println(string(output))
				return nil
			}
			for _, a := range analyses {
				fmt.Println(strings.Join(a.Words[1:], " "))
				fmt.Println(a.String())
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Path to model file (default: auto-detect)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print analyses as JSON")
	beam.register(cmd)
	return cmd
}

func analyzeLines(m *syntacticparser.Model, data []byte) ([]*headline.Analysis, error) {
	sentences, err := corpus.ReadText(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(sentences))
	for i, words := range sentences {
		lines[i] = strings.Join(words, " ")
	}
	return m.AnalyzeHeadlines(lines)
}

func isHTML(target, contentType string, data []byte) bool {
	if strings.Contains(contentType, "html") {
		return true
	}
	switch strings.ToLower(filepath.Ext(target)) {
	case ".html", ".htm":
		return true
	}
	head := strings.ToLower(string(bytes.TrimSpace(data[:min(len(data), 512)])))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
