// Copyright 2026 The osm2pgsql-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS-IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pggeom

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"

	"github.com/remyleone/osm2pgsql/area"
	"github.com/remyleone/osm2pgsql/osm"
)

func TestFromAreaSquareWithHole(t *testing.T) {
	ar := &area.Area{
		ID: osm.AreaIDFromRelation(9),
		Geometry: orb.MultiPolygon{
			{
				orb.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}},
				orb.Ring{{1, 1}, {1, 2}, {2, 2}, {2, 1}, {1, 1}},
			},
		},
	}

	mp, err := FromArea(ar)
	if err != nil {
		t.Fatalf("FromArea: %v", err)
	}
	if got := mp.NumPolygons(); got != 1 {
		t.Fatalf("NumPolygons() = %d, want 1", got)
	}
	p := mp.Polygon(0)
	if got := p.NumLinearRings(); got != 2 {
		t.Fatalf("NumLinearRings() = %d, want shell plus hole", got)
	}

	shell := p.LinearRing(0)
	if got := shell.NumCoords(); got != 5 {
		t.Errorf("shell NumCoords() = %d, want 5", got)
	}
	want := []float64{0, 0, 4, 0, 4, 4, 0, 4, 0, 0}
	if diff := cmp.Diff(want, shell.FlatCoords()); diff != "" {
		t.Errorf("shell coordinates (-want +got):\n%s", diff)
	}
	wantHole := []float64{1, 1, 1, 2, 2, 2, 2, 1, 1, 1}
	if diff := cmp.Diff(wantHole, p.LinearRing(1).FlatCoords()); diff != "" {
		t.Errorf("hole coordinates (-want +got):\n%s", diff)
	}

	if err := ValidateMultiPolygon(mp); err != nil {
		t.Errorf("converted multipolygon does not validate: %v", err)
	}
}

func TestFromAreaTwoPolygons(t *testing.T) {
	ar := &area.Area{
		ID: osm.AreaIDFromRelation(4),
		Geometry: orb.MultiPolygon{
			{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
			{orb.Ring{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {5, 5}}},
		},
	}
	mp, err := FromArea(ar)
	if err != nil {
		t.Fatalf("FromArea: %v", err)
	}
	if got := mp.NumPolygons(); got != 2 {
		t.Errorf("NumPolygons() = %d, want 2", got)
	}
}

func TestFromAreaRejectsShortRing(t *testing.T) {
	ar := &area.Area{
		ID: osm.AreaIDFromWay(3),
		Geometry: orb.MultiPolygon{
			{orb.Ring{{0, 0}, {1, 0}, {0, 0}}},
		},
	}
	if _, err := FromArea(ar); !errors.Is(err, ShortRing) {
		t.Fatalf("FromArea error = %v, want ShortRing", err)
	}
}

func TestFromAreaRejectsOutOfBounds(t *testing.T) {
	ar := &area.Area{
		ID: osm.AreaIDFromWay(3),
		Geometry: orb.MultiPolygon{
			{orb.Ring{{179, 0}, {181, 0}, {181, 1}, {179, 1}, {179, 0}}},
		},
	}
	if _, err := FromArea(ar); !errors.Is(err, BoundsExceeded) {
		t.Fatalf("FromArea error = %v, want BoundsExceeded", err)
	}
}
