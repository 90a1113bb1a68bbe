package wp2mdcmd

import "testing"

func TestCreateCommandValidate(t *testing.T) {
	cases := []struct {
		name    string
		cmd     CreateCommand
		wantErr bool
	}{
		{name: "valid", cmd: CreateCommand{Source: "site.xml", OutputDir: "out"}},
		{name: "hugo shortcodes", cmd: CreateCommand{Source: "site.xml", OutputDir: "out", Shortcodes: "hugo"}},
		{name: "missing source", cmd: CreateCommand{OutputDir: "out"}, wantErr: true},
		{name: "blank output", cmd: CreateCommand{Source: "site.xml", OutputDir: "   "}, wantErr: true},
		{name: "unknown shortcode mode", cmd: CreateCommand{Source: "site.xml", OutputDir: "out", Shortcodes: "strip"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cmd.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestStatsCommandValidate(t *testing.T) {
	if err := (StatsCommand{}).Validate(); err == nil {
		t.Fatal("expected error for missing source")
	}
	if err := (StatsCommand{Source: "site.xml"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPreviewCommandValidate(t *testing.T) {
	if err := (PreviewCommand{Source: "site.xml"}).Validate(); err == nil {
		t.Fatal("expected error for missing key")
	}
	if err := (PreviewCommand{Source: "site.xml", Key: "42"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMessageTypes(t *testing.T) {
	if (CreateCommand{}).Type() != "wp2md.create" || (StatsCommand{}).Type() != "wp2md.stats" || (PreviewCommand{}).Type() != "wp2md.preview" {
		t.Fatal("unexpected message types")
	}
}
