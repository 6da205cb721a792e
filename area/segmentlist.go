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
	"fmt"
	"sort"

	"github.com/remyleone/osm2pgsql/osm"
)

// SegmentList is the arena owning every segment of one assembly session.
// Ways are extracted into it, it is sorted and de-duplicated once, and from
// then on its backing array never changes shape, so the *Segment references
// handed out stay valid for as long as the session (and every ring built
// from it) lives.
type SegmentList struct {
	segments []Segment
	sorted   []*Segment
	report   func(Problem)
	frozen   bool
}

// NewSegmentList creates an empty segment arena. The report callback
// receives non-fatal extraction problems; nil is allowed.
func NewSegmentList(report func(Problem)) *SegmentList {
	if report == nil {
		report = func(Problem) {}
	}
	return &SegmentList{report: report}
}

// ExtractFromWay cuts a way's node list into directed segments and appends
// them to the arena. Segments between coincident locations (duplicate
// nodes) are skipped and reported. A node without a valid location makes
// the whole way unusable and is returned as an error.
//
// ExtractFromWay must not be called once the list has been sorted: sorting
// freezes the arena so that segment references stay stable.
func (l *SegmentList) ExtractFromWay(way *osm.Way, role Role) error {
	if l.frozen {
		panic("area: ExtractFromWay called after Sort")
	}
	for i := 0; i+1 < len(way.Nodes); i++ {
		a, b := way.Nodes[i], way.Nodes[i+1]
		if !a.Location.Valid() || !b.Location.Valid() {
			l.report(Problem{
				Kind:   ProblemMissingLocation,
				WayIDs: []osm.WayID{way.ID},
			})
			return fmt.Errorf("way %d: node %d: %w", way.ID, missingRef(a, b), ErrInvalidLocation)
		}
		if a.Location == b.Location {
			l.report(Problem{
				Kind:     ProblemDuplicateNode,
				WayIDs:   []osm.WayID{way.ID},
				Location: a.Location,
			})
			continue
		}
		l.segments = append(l.segments, NewSegment(a, b, role, way))
	}
	return nil
}

func missingRef(a, b osm.NodeRef) osm.NodeID {
	if !a.Location.Valid() {
		return a.ID
	}
	return b.ID
}

// Sort orders the segment view by the segment total order and freezes the
// arena. Get indices are unaffected: they keep addressing extraction order.
func (l *SegmentList) Sort() {
	l.frozen = true
	l.sorted = make([]*Segment, len(l.segments))
	for i := range l.segments {
		l.sorted[i] = &l.segments[i]
	}
	sort.Slice(l.sorted, func(i, j int) bool {
		return l.sorted[i].Less(l.sorted[j])
	})
}

// RemoveDuplicates drops segments that appear more than once in pairs: two
// ways tracing the same boundary cancel each other there, leaving the
// combined outline. An odd leftover stays usable. Each removed pair is
// reported. Returns the number of segments removed.
//
// The list must be sorted first; equal segments are adjacent in the sorted
// view.
func (l *SegmentList) RemoveDuplicates() int {
	removed := 0
	i := 0
	for i < len(l.sorted) {
		j := i + 1
		for j < len(l.sorted) && l.sorted[i].sameEndpoints(l.sorted[j]) {
			j++
		}
		// Run of j-i equal segments: cancel them pairwise.
		for k := i; k+1 < j; k += 2 {
			a, b := l.sorted[k], l.sorted[k+1]
			a.removed = true
			b.removed = true
			removed += 2
			l.report(Problem{
				Kind:     ProblemDuplicateSegment,
				WayIDs:   waysOf(a, b),
				Location: a.First().Location,
			})
		}
		i = j
	}
	return removed
}

func waysOf(segs ...*Segment) []osm.WayID {
	var ids []osm.WayID
	seen := make(map[osm.WayID]bool)
	for _, s := range segs {
		if s.way == nil || seen[s.way.ID] {
			continue
		}
		seen[s.way.ID] = true
		ids = append(ids, s.way.ID)
	}
	return ids
}

// Len returns the total number of segments in the arena, removed ones
// included.
func (l *SegmentList) Len() int { return len(l.segments) }

// Get returns the i-th segment in extraction order.
func (l *SegmentList) Get(i int) *Segment { return &l.segments[i] }
