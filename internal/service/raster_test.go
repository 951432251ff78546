package service

import "testing"

func TestParseRasterOptions(t *testing.T) {
	cases := []struct {
		name        string
		band        string
		vmin        string
		vmax        string
		nodata      string
		wantBand    *int
		wantIgnored []string
	}{
		{name: "all empty"},
		{name: "valid band", band: "3", wantBand: intp(3)},
		{name: "band with spaces", band: " 2 ", wantBand: intp(2)},
		{name: "junk band falls back to unset", band: "abc", wantIgnored: []string{"band"}},
		{name: "junk everywhere", band: "x", vmin: "y", vmax: "z", nodata: "-", wantIgnored: []string{"band", "vmin", "vmax", "nodata"}},
		{name: "mixed", band: "1", vmin: "0.5", vmax: "oops", wantBand: intp(1), wantIgnored: []string{"vmax"}},
	}

	for _, tc := range cases {
		opts, ignored := ParseRasterOptions(tc.band, tc.vmin, tc.vmax, tc.nodata)
		if (opts.Band == nil) != (tc.wantBand == nil) {
			t.Fatalf("%s: band set = %v, want %v", tc.name, opts.Band != nil, tc.wantBand != nil)
		}
		if opts.Band != nil && *opts.Band != *tc.wantBand {
			t.Fatalf("%s: band = %d, want %d", tc.name, *opts.Band, *tc.wantBand)
		}
		if len(ignored) != len(tc.wantIgnored) {
			t.Fatalf("%s: ignored = %v, want %v", tc.name, ignored, tc.wantIgnored)
		}
		for i := range ignored {
			if ignored[i] != tc.wantIgnored[i] {
				t.Fatalf("%s: ignored = %v, want %v", tc.name, ignored, tc.wantIgnored)
			}
		}
	}
}

func TestParseRasterOptionsValues(t *testing.T) {
	opts, ignored := ParseRasterOptions("", "-10.5", "255", "0")
	if len(ignored) != 0 {
		t.Fatalf("ignored = %v, want none", ignored)
	}
	if opts.Band != nil {
		t.Fatalf("band should be unset")
	}
	if opts.VMin == nil || *opts.VMin != -10.5 {
		t.Fatalf("vmin = %v", opts.VMin)
	}
	if opts.VMax == nil || *opts.VMax != 255 {
		t.Fatalf("vmax = %v", opts.VMax)
	}
	if opts.NoData == nil || *opts.NoData != 0 {
		t.Fatalf("nodata = %v", opts.NoData)
	}
}

func intp(v int) *int { return &v }
