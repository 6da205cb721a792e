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

package area

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/remyleone/osm2pgsql/osm"
)

func TestExtractFromWay(t *testing.T) {
	way := &osm.Way{ID: 9, Nodes: []osm.NodeRef{
		node(1, 0, 0), node(2, 1, 0), node(3, 1, 1),
	}}
	list := NewSegmentList(nil)
	if err := list.ExtractFromWay(way, RoleOuter); err != nil {
		t.Fatalf("ExtractFromWay: %v", err)
	}
	if got := list.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	s := list.Get(0)
	if s.Way() != way || s.Role() != RoleOuter {
		t.Error("segment lost its way or role")
	}
	if s.Start().ID != 1 || s.Stop().ID != 2 {
		t.Errorf("first segment runs %d->%d, want 1->2", s.Start().ID, s.Stop().ID)
	}
}

func TestExtractSkipsDuplicateNodes(t *testing.T) {
	// Nodes 2 and 22 share a location: the zero-length segment between
	// them is dropped and reported, the rest of the way still extracts.
	way := &osm.Way{ID: 9, Nodes: []osm.NodeRef{
		node(1, 0, 0), node(2, 1, 0), node(22, 1, 0), node(3, 1, 1),
	}}
	var problems []Problem
	list := NewSegmentList(func(p Problem) { problems = append(problems, p) })
	if err := list.ExtractFromWay(way, RoleNone); err != nil {
		t.Fatalf("ExtractFromWay: %v", err)
	}
	if got := list.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if len(problems) != 1 || problems[0].Kind != ProblemDuplicateNode {
		t.Fatalf("problems = %v, want one duplicate node", problems)
	}
	if diff := cmp.Diff([]osm.WayID{9}, problems[0].WayIDs); diff != "" {
		t.Errorf("problem way ids (-want +got):\n%s", diff)
	}
}

func TestExtractRejectsMissingLocation(t *testing.T) {
	way := &osm.Way{ID: 4, Nodes: []osm.NodeRef{
		node(1, 0, 0),
		{ID: 2, Location: osm.InvalidLocation},
		node(3, 1, 1),
	}}
	var problems []Problem
	list := NewSegmentList(func(p Problem) { problems = append(problems, p) })
	err := list.ExtractFromWay(way, RoleNone)
	if !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("ExtractFromWay error = %v, want ErrInvalidLocation", err)
	}
	if len(problems) != 1 || problems[0].Kind != ProblemMissingLocation {
		t.Errorf("problems = %v, want one missing location", problems)
	}
}

func TestExtractAfterSortPanics(t *testing.T) {
	way := &osm.Way{ID: 1, Nodes: []osm.NodeRef{node(1, 0, 0), node(2, 1, 0)}}
	list := NewSegmentList(nil)
	if err := list.ExtractFromWay(way, RoleNone); err != nil {
		t.Fatal(err)
	}
	list.Sort()
	expectPanic(t, "ExtractFromWay after Sort", func() {
		_ = list.ExtractFromWay(way, RoleNone)
	})
}

func TestSortOrdersSegments(t *testing.T) {
	way := &osm.Way{ID: 1, Nodes: []osm.NodeRef{
		node(1, 2, 2), node(2, 0, 0), node(3, 1, 1), node(4, 2, 2),
	}}
	list := NewSegmentList(nil)
	if err := list.ExtractFromWay(way, RoleNone); err != nil {
		t.Fatal(err)
	}
	list.Sort()
	for i := 1; i < len(list.sorted); i++ {
		if list.sorted[i].Less(list.sorted[i-1]) {
			t.Fatalf("sorted view out of order at %d", i)
		}
	}
}

func TestRemoveDuplicatesCancelsPairs(t *testing.T) {
	// The edge a-b appears three times, once reversed: one pair cancels,
	// the odd copy survives alongside b-c.
	a := node(1, 0, 0)
	b := node(2, 1, 0)
	c := node(3, 1, 1)
	w1 := &osm.Way{ID: 1, Nodes: []osm.NodeRef{a, b, c}}
	w2 := &osm.Way{ID: 2, Nodes: []osm.NodeRef{b, a}}
	w3 := &osm.Way{ID: 3, Nodes: []osm.NodeRef{a, b}}

	var problems []Problem
	list := NewSegmentList(func(p Problem) { problems = append(problems, p) })
	for _, w := range []*osm.Way{w1, w2, w3} {
		if err := list.ExtractFromWay(w, RoleNone); err != nil {
			t.Fatal(err)
		}
	}
	list.Sort()
	if got := list.RemoveDuplicates(); got != 2 {
		t.Errorf("RemoveDuplicates() = %d, want 2", got)
	}

	var alive []*Segment
	for i := 0; i < list.Len(); i++ {
		if !list.Get(i).removed {
			alive = append(alive, list.Get(i))
		}
	}
	if len(alive) != 2 {
		t.Fatalf("%d segments left, want 2", len(alive))
	}
	ab := NewSegment(a, b, RoleNone, nil)
	nAB := 0
	for _, s := range alive {
		if s.sameEndpoints(&ab) {
			nAB++
		}
	}
	if nAB != 1 {
		t.Errorf("%d copies of a-b left, want the odd one", nAB)
	}
	if len(problems) != 1 || problems[0].Kind != ProblemDuplicateSegment {
		t.Errorf("problems = %v, want one duplicate segment", problems)
	}
}

func TestRemoveDuplicatesKeepsDistinct(t *testing.T) {
	way := &osm.Way{ID: 1, Nodes: []osm.NodeRef{
		node(1, 0, 0), node(2, 1, 0), node(3, 1, 1), node(4, 0, 1), node(1, 0, 0),
	}}
	list := NewSegmentList(nil)
	if err := list.ExtractFromWay(way, RoleNone); err != nil {
		t.Fatal(err)
	}
	list.Sort()
	if got := list.RemoveDuplicates(); got != 0 {
		t.Errorf("RemoveDuplicates() = %d, want 0", got)
	}
}
