package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/varoOP/shotsort/internal/domain"
)

func TestCommandsRegistered(t *testing.T) {
	for _, path := range [][]string{
		{"run"},
		{"repair-cache"},
		{"names", "export"},
		{"names", "import"},
		{"history"},
		{"version"},
	} {
		cmd, _, err := rootCmd.Find(path)
		if err != nil || cmd == rootCmd {
			t.Errorf("command %v not registered: %v", path, err)
		}
	}
}

func TestRunFlags(t *testing.T) {
	for _, name := range []string{"pattern", "offline", "quiet", "json"} {
		if runCmd.Flags().Lookup(name) == nil {
			t.Errorf("run is missing --%s", name)
		}
	}
	if f := runCmd.Flags().ShorthandLookup("j"); f == nil || f.Name != "json" {
		t.Error("-j should be --json")
	}
}

func TestPrintVersionShowsCacheFormat(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)
	if !strings.Contains(buf.String(), "Cache format: "+domain.SchemaVersion) {
		t.Errorf("version output = %q", buf.String())
	}
}
