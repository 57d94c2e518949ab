package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand_VersionFlag(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute(--version) error = %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Errorf("version output = %q, want it to contain %q", out.String(), version)
	}
}

func TestRootCommand_RequiresSourceAndTarget(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"one arg", []string{"/music"}},
		{"three args", []string{"/music", "/portable", "/extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err == nil {
				t.Error("Execute() should fail without SOURCE and TARGET")
			}
		})
	}
}
