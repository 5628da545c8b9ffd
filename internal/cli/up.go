package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// defaultRepo is the GitHub repository whose releases "up" installs from.
const defaultRepo = "sonnert/SyntacticParser"

func (c *CLI) newUpCommand() *cobra.Command {
	var repo string
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Self-update to the latest released binary",
		Long: `Replace the running binary with the latest GitHub release of --repo.

The repository must publish releases with per-platform archives
(for example syntacticparser_linux_amd64.tar.gz). Builds from source
report version "dev" and are always considered outdated. Trained models
are separate files and are not touched.`,
		Example: `  syntacticparser up --check
  syntacticparser up --repo myfork/SyntacticParser`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.selfUpdate(cmd.Context(), repo, checkOnly)
		},
	}
	cmd.Flags().StringVar(&repo, "repo", defaultRepo, "GitHub owner/name to look for releases in")
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only report whether a newer release exists")
	return cmd
}

// installedVersion maps the build version to a semver the updater can compare.
func installedVersion(v string) string {
	if v == "" || v == "dev" {
		return "0.0.0"
	}
	return v
}

func (c *CLI) selfUpdate(ctx context.Context, repo string, checkOnly bool) error {
	updater, err := selfupdate.NewUpdater(selfupdate.Config{})
	if err != nil {
		return err
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(repo))
	if err != nil {
		return fmt.Errorf("detect latest version of %s: %w", repo, err)
	}
	if !found {
		return fmt.Errorf("no release for this platform found in %s", repo)
	}

	if latest.LessOrEqual(installedVersion(c.version)) {
		fmt.Printf("Already up to date (%s)\n", c.version)
		return nil
	}
	if checkOnly {
		fmt.Printf("Update available: %s -> %s\n", c.version, latest.Version())
		return nil
	}

	slog.Info("Updating", "from", c.version, "to", latest.Version(), "repo", repo)
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	fmt.Printf("Updated to %s\n", latest.Version())
	return nil
}
