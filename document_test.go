// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

import "testing"

func TestDocumentName(t *testing.T) {
	d := &Document{Header: map[string]string{"name": "  wall  "}}
	if got := d.Name(); got != "wall" {
		t.Errorf("Name = %q, want wall", got)
	}
	if got := (&Document{Header: map[string]string{}}).Name(); got != "" {
		t.Errorf("missing name = %q, want empty", got)
	}
}

func TestDocumentHeaderOr(t *testing.T) {
	d := &Document{Header: map[string]string{
		"format": "png",
		"blank":  "   ",
	}}
	if got := d.HeaderOr("format", "p8"); got != "png" {
		t.Errorf("HeaderOr(format) = %q, want png", got)
	}
	if got := d.HeaderOr("missing", "p8"); got != "p8" {
		t.Errorf("HeaderOr(missing) = %q, want default", got)
	}
	// Whitespace-only values fall through to the default.
	if got := d.HeaderOr("blank", "p8"); got != "p8" {
		t.Errorf("HeaderOr(blank) = %q, want default", got)
	}
}

func TestDocumentTags(t *testing.T) {
	d := &Document{Header: map[string]string{"tags": "#building #solid plain"}}
	got := d.Tags()
	if len(got) != 3 || got[0] != "building" || got[1] != "solid" || got[2] != "plain" {
		t.Errorf("Tags = %v, want [building solid plain]", got)
	}
	if got := (&Document{Header: map[string]string{}}).Tags(); got != nil {
		t.Errorf("empty tags = %v, want nil", got)
	}
}

func TestDocumentGridPadsShortRows(t *testing.T) {
	d := &Document{Body: []string{"ABC", "D", ""}}
	grid := d.Grid()
	if len(grid) != 3 {
		t.Fatalf("rows = %d, want 3", len(grid))
	}
	for i, row := range grid {
		if len(row) != 3 {
			t.Errorf("row %d width = %d, want 3", i, len(row))
		}
	}
	if grid[1][0] != 'D' || grid[1][1] != ' ' || grid[2][2] != ' ' {
		t.Errorf("padding wrong: %q %q", string(grid[1]), string(grid[2]))
	}
}
