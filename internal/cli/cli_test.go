package cli

import (
	"strings"
	"testing"

	"github.com/sonnert/SyntacticParser/search"
)

func TestBeamFlags(t *testing.T) {
	tests := []struct {
		flags beamFlags
		want  search.Beam
		err   bool
	}{
		{beamFlags{width: 1, mode: "step"}, search.Beam{Width: 1}, false},
		{beamFlags{width: 8, mode: "path", concurrency: 4}, search.Beam{Width: 8, Mode: search.PathScore, Concurrency: 4}, false},
		{beamFlags{width: 0, mode: "step"}, search.Beam{}, true},
		{beamFlags{width: 2, mode: "sum"}, search.Beam{}, true},
	}
	for _, tt := range tests {
		got, err := tt.flags.beam()
		if (err != nil) != tt.err {
			t.Errorf("%+v: err = %v", tt.flags, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%+v: beam = %+v, want %+v", tt.flags, got, tt.want)
		}
	}
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		target      string
		contentType string
		data        string
		want        bool
	}{
		{"https://example.com", "text/html; charset=utf-8", "x", true},
		{"page.HTML", "", "x", true},
		{"headlines.txt", "", "Council approves budget\n", false},
		{"", "", "  <!DOCTYPE html><html></html>", true},
		{"", "", "<html><h1>x</h1></html>", true},
		{"", "", "", false},
	}
	for _, tt := range tests {
		if got := isHTML(tt.target, tt.contentType, []byte(tt.data)); got != tt.want {
			t.Errorf("isHTML(%q, %q, %q) = %v, want %v", tt.target, tt.contentType, tt.data, got, tt.want)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	c := New("test")
	for _, name := range []string{"train", "evaluate", "parse", "headlines", "collect", "data", "up"} {
		cmd, _, err := c.rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered: %v", name, err)
		}
	}
}

func TestUpCommand(t *testing.T) {
	c := New("test")
	cmd, _, err := c.rootCmd.Find([]string{"up"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(cmd.Long, "publish releases") {
		t.Errorf("up help does not mention the release requirement: %q", cmd.Long)
	}
	repo := cmd.Flags().Lookup("repo")
	if repo == nil || repo.DefValue != defaultRepo {
		t.Errorf("--repo flag = %+v, want default %q", repo, defaultRepo)
	}
	if cmd.Flags().Lookup("check") == nil {
		t.Error("--check flag missing")
	}

	tests := map[string]string{"dev": "0.0.0", "": "0.0.0", "1.2.3": "1.2.3"}
	for in, want := range tests {
		if got := installedVersion(in); got != want {
			t.Errorf("installedVersion(%q) = %q, want %q", in, got, want)
		}
	}
}
