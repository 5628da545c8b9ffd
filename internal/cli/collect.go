package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/sonnert/SyntacticParser/internal/collect"
)

func (c *CLI) newCollectCommand() *cobra.Command {
	var (
		urlFile     string
		output      string
		timeout     int
		perSecond   float64
		concurrency int
		userAgent   string
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Fetch pages and save their headlines, one per line, for parsing",
		Example: `  syntacticparser collect --urls sites.txt --output headlines.txt
  syntacticparser collect --urls sites.txt --rate 0.5 --concurrency 2
  syntacticparser headlines headlines.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			urls, err := collect.LoadURLs(urlFile)
			if err != nil {
				return fmt.Errorf("load urls: %w", err)
			}
			slog.Info("Loaded URLs", "count", len(urls))

			col := &collect.Collector{
				Client:      collect.NewHTTPClient(time.Duration(timeout) * time.Second),
				UserAgent:   userAgent,
				Concurrency: concurrency,
			}
			if perSecond > 0 {
				col.Limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
			}
			pages, err := col.Collect(cmd.Context(), urls)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			n, err := collect.WriteHeadlines(f, pages)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			slog.Info("Collection complete", "pages", len(pages), "headlines", n, "output", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&urlFile, "urls", "", "File with one URL or domain per line")
	cmd.Flags().StringVarP(&output, "output", "o", "headlines.txt", "Output text file")
	cmd.Flags().IntVar(&timeout, "timeout", 30, "HTTP timeout in seconds")
	cmd.Flags().Float64Var(&perSecond, "rate", 1, "Maximum requests per second (0 = unlimited)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Pages fetched in parallel")
	cmd.Flags().StringVar(&userAgent, "user-agent", collect.DefaultUserAgent, "User-Agent header")
	_ = cmd.MarkFlagRequired("urls")
	return cmd
}
