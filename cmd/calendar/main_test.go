package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"calendar-cli/internal/cli"
)

func TestRewriteDirectDateLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"calendar"},
			want: []string{"calendar"},
		},
		{
			name: "direct date first token",
			in:   []string{"calendar", "2024-03-15"},
			want: []string{"calendar", "events", "get", "2024-03-15"},
		},
		{
			name: "legacy unpadded date",
			in:   []string{"calendar", "2024-3-5"},
			want: []string{"calendar", "events", "get", "2024-3-5"},
		},
		{
			name: "direct date after value flag",
			in:   []string{"calendar", "--dir", "./tmp-data", "2024-03-15"},
			want: []string{"calendar", "--dir", "./tmp-data", "events", "get", "2024-03-15"},
		},
		{
			name: "direct date after equals flag",
			in:   []string{"calendar", "--storage=json", "2024-03-15"},
			want: []string{"calendar", "--storage=json", "events", "get", "2024-03-15"},
		},
		{
			name: "direct date after bool flag",
			in:   []string{"calendar", "--pretty", "2024-03-15"},
			want: []string{"calendar", "--pretty", "events", "get", "2024-03-15"},
		},
		{
			name: "direct date after double dash",
			in:   []string{"calendar", "--", "2024-03-15"},
			want: []string{"calendar", "events", "get", "--", "2024-03-15"},
		},
		{
			name: "direct date after flags and double dash",
			in:   []string{"calendar", "--dir", "./tmp-data", "--", "2024-03-15"},
			want: []string{"calendar", "--dir", "./tmp-data", "events", "get", "--", "2024-03-15"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"calendar", "events", "get", "2024-03-15"},
			want: []string{"calendar", "events", "get", "2024-03-15"},
		},
		{
			name: "invalid date not rewritten",
			in:   []string{"calendar", "2024-13-40"},
			want: []string{"calendar", "2024-13-40"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"calendar", "wat"},
			want: []string{"calendar", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectDateLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectDateLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}

func TestDirectDateLookupAfterDoubleDashRunsGet(t *testing.T) {
	t.Setenv("CALENDAR_CONFIG_DIR", t.TempDir())
	t.Setenv("CALENDAR_STORAGE", "")
	t.Setenv("CALENDAR_LOCALE", "")
	dir := t.TempDir()

	run := func(argv ...string) (string, error) {
		cmd := cli.NewRootCmd()
		var out, errOut bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)
		cmd.SetArgs(rewriteDirectDateLookupArgs(append([]string{"calendar"}, argv...))[1:])
		err := cmd.Execute()
		return out.String() + errOut.String(), err
	}

	if out, err := run("--dir", dir, "events", "set", "2024-03-15", "--description", "Standup"); err != nil {
		t.Fatalf("set: %v\n%s", err, out)
	}
	out, err := run("--dir", dir, "--", "2024-03-15")
	if err != nil {
		t.Fatalf("lookup: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"description":"Standup"`) {
		t.Fatalf("expected event JSON, got:\n%s", out)
	}
}
