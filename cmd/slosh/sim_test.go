package main

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"tension=0.01:0.03:3", "fillSmoothing=0.1:0.1:1"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"tension", "fillSmoothing"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if len(ranges) != 2 || len(ranges[0]) != 3 || len(ranges[1]) != 1 {
		t.Fatalf("ranges %v", ranges)
	}
	if math.Abs(ranges[0][0]-0.01) > 1e-12 || math.Abs(ranges[0][2]-0.03) > 1e-12 {
		t.Errorf("tension axis %v", ranges[0])
	}
}

func TestParseGridRejects(t *testing.T) {
	for _, axis := range []string{"tension", "=1:2:3", "tension=1:2", "tension=a:2:3", "tension=1:2:0"} {
		if _, _, err := parseGrid([]string{axis}); err == nil {
			t.Errorf("%q: expected error", axis)
		}
	}
}
