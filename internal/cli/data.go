package cli

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// ewtURL is the raw file prefix of the English Web Treebank in Universal
// Dependencies.
const ewtURL = "https://raw.githubusercontent.com/UniversalDependencies/UD_English-EWT/master/"

var ewtFiles = []string{
	"en_ewt-ud-train.conllu",
	"en_ewt-ud-dev.conllu",
	"en_ewt-ud-test.conllu",
}

func (c *CLI) newDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Manage CoNLL-U treebanks used for training and evaluation",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	var dataFolder string
	var archiveURL string
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download the UD English-EWT treebank, or the .conllu files of a .tar.gz archive",
		Example: `  syntacticparser data download
  syntacticparser data download --data-folder data
  syntacticparser data download --archive https://example.org/treebank.tgz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dataFolder, 0755); err != nil {
				return fmt.Errorf("create %s: %w", dataFolder, err)
			}
			if archiveURL != "" {
				return downloadArchive(archiveURL, dataFolder)
			}
			for _, name := range ewtFiles {
				if err := downloadFile(ewtURL+name, filepath.Join(dataFolder, name)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	downloadCmd.Flags().StringVar(&dataFolder, "data-folder", "data", "Destination folder for treebank files")
	downloadCmd.Flags().StringVar(&archiveURL, "archive", "", "URL of a .tar.gz archive to extract .conllu files from")

	dataCmd.AddCommand(downloadCmd)
	return dataCmd
}

func httpGet(url string) (io.ReadCloser, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func downloadFile(url, dest string) error {
	slog.Info("Downloading", "url", url)
	body, err := httpGet(url)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer func() { _ = body.Close() }()

	written, err := writeFile(dest, body)
	if err != nil {
		return err
	}
	slog.Info("Saved", "path", dest, "size", humanize.Bytes(uint64(written)))
	return nil
}

func writeFile(dest string, r io.Reader) (int64, error) {
	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create file %s: %w", dest, err)
	}
	written, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return 0, fmt.Errorf("write file %s: %w", dest, err)
	}
	return written, f.Close()
}

// downloadArchive extracts every .conllu file of a gzipped tar archive into
// dataFolder, flattening directories.
func downloadArchive(url, dataFolder string) error {
	slog.Info("Downloading archive", "url", url)
	body, err := httpGet(url)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer func() { _ = body.Close() }()

	gr, err := gzip.NewReader(body)
	if err != nil {
		return fmt.Errorf("gzip reader: %w", err)
	}
	defer func() { _ = gr.Close() }()

	tr := tar.NewReader(gr)
	count := 0
	var total int64
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || !strings.HasSuffix(hdr.Name, ".conllu") {
			continue
		}
		target := filepath.Join(dataFolder, filepath.Base(hdr.Name))
		written, err := writeFile(target, tr)
		if err != nil {
			return err
		}
		slog.Debug("Extracted", "path", target, "size", humanize.Bytes(uint64(written)))
		count++
		total += written
	}
	if count == 0 {
		return fmt.Errorf("no .conllu files in %s", url)
	}
	slog.Info("Treebank extracted", "files", count, "size", humanize.Bytes(uint64(total)), "folder", dataFolder)
	return nil
}
