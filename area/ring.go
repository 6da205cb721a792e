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
	"strings"
	"sync/atomic"

	"github.com/remyleone/osm2pgsql/osm"
)

// ringSeq numbers rings for diagnostics. The counter is global and atomic
// so rings stay distinguishable in traces even when independent relations
// are assembled in parallel.
var ringSeq atomic.Int64

// Ring is a chain of directed segments in the process of being assembled
// into a closed polygon boundary.
//
// A ring holds non-owning references into the session's SegmentList; it
// mutates shared segment state (the owning-ring back-reference, the
// direction-done flag) as a side effect of its operations. A ring and its
// member segments form one unit of mutation: they must not be touched from
// more than one goroutine.
//
// The nil-segment and nesting preconditions below are programming-contract
// violations of the caller's join/nesting plan, not runtime conditions, and
// are reported by panicking.
type Ring struct {
	segments []*Segment
	inner    []*Ring

	// The smallest segment by the segment total order, kept current on
	// every insertion. Never recomputed by scanning.
	minSegment *Segment

	// Set if this ring is an inner ring (a hole) of another ring.
	outer *Ring

	// Running sum of the member segments' Det contributions. The sign
	// convention follows Det: counter-clockwise chains accumulate a
	// positive sum.
	sum int64

	// Diagnostic id, assigned at construction and shown in traces.
	num int64
}

// NewRing creates a ring seeded with a single segment. The segment's
// owning-ring reference is pointed at the new ring.
func NewRing(seg *Segment) *Ring {
	if seg == nil {
		panic("area: NewRing with nil segment")
	}
	r := &Ring{
		minSegment: seg,
		num:        ringSeq.Add(1),
	}
	r.AppendBack(seg)
	return r
}

// AppendBack appends a segment to the end of the chain. The caller
// guarantees continuity: the segment's start must coincide with the ring's
// current stop location. This is not verified here; join planning owns it.
//
// Side effect: the segment's owning-ring reference is rewritten to this
// ring, transferring ownership within the session. The cached minimum
// segment and the running area sum are updated incrementally.
func (r *Ring) AppendBack(seg *Segment) {
	if seg == nil {
		panic("area: AppendBack with nil segment")
	}
	if seg.Less(r.minSegment) {
		r.minSegment = seg
	}
	r.segments = append(r.segments, seg)
	seg.ring = r
	r.sum += seg.Det()
}

// JoinForward absorbs the other ring's whole chain, in order, onto the back
// of this ring. Use it when other's first endpoint continues this ring's
// last endpoint as-is.
//
// The other ring is drained and must not be reused without re-seeding.
func (r *Ring) JoinForward(other *Ring) {
	segs := other.drain()
	for _, seg := range segs {
		r.AppendBack(seg)
	}
}

// JoinBackward absorbs the other ring's chain in reverse traversal order,
// reversing each segment in place before appending. Use it when other's
// chain runs opposite to the direction needed to continue this ring.
//
// The other ring is drained and must not be reused without re-seeding.
func (r *Ring) JoinBackward(other *Ring) {
	segs := other.drain()
	for i := len(segs) - 1; i >= 0; i-- {
		segs[i].Reverse()
		r.AppendBack(segs[i])
	}
}

// drain empties the ring, returning its former segments. A drained ring is
// in an unusable state on purpose: any further chain operation on it will
// fail loudly.
func (r *Ring) drain() []*Segment {
	segs := r.segments
	r.segments = nil
	r.minSegment = nil
	r.sum = 0
	return segs
}

// Segments returns the ring's segment chain in traversal order. The slice
// is the ring's own backing storage; callers must not modify it.
func (r *Ring) Segments() []*Segment { return r.segments }

// MinSegment returns the smallest member segment by the segment total
// order. Because that order ignores direction, the minimum is stable under
// Reverse.
func (r *Ring) MinSegment() *Segment { return r.minSegment }

// Sum returns the accumulated signed area contribution of the chain.
func (r *Ring) Sum() int64 { return r.sum }

// Start returns the first endpoint of the chain.
func (r *Ring) Start() osm.NodeRef { return r.segments[0].Start() }

// Stop returns the last endpoint of the chain.
func (r *Ring) Stop() osm.NodeRef { return r.segments[len(r.segments)-1].Stop() }

// IsClosed reports whether the chain's first and last endpoints coincide.
// Identity is by location: two distinct node refs at the same coordinates
// close the ring.
func (r *Ring) IsClosed() bool {
	return r.Start().Location == r.Stop().Location
}

// Reverse flips the traversal direction of the whole ring: every member
// segment is reversed in place, the chain order is inverted, and the area
// sum changes sign. The cached minimum segment stays valid because the
// segment order is direction-independent.
func (r *Ring) Reverse() {
	for _, seg := range r.segments {
		seg.Reverse()
	}
	for i, j := 0, len(r.segments)-1; i < j; i, j = i+1, j-1 {
		r.segments[i], r.segments[j] = r.segments[j], r.segments[i]
	}
	r.sum = -r.sum
}

// IsClockwise reports the winding of the chain: a non-positive area sum
// means clockwise.
func (r *Ring) IsClockwise() bool { return r.sum <= 0 }

// FixDirection establishes the canonical winding: outer rings
// counter-clockwise, inner rings clockwise. A ring already wound correctly
// is left alone, so calling FixDirection twice never reverses twice.
func (r *Ring) FixDirection() {
	if r.IsClockwise() == r.IsOuter() {
		r.Reverse()
	}
}

// MarkDirectionDone finalizes the direction of every member segment.
func (r *Ring) MarkDirectionDone() {
	for _, seg := range r.segments {
		seg.MarkDirectionDone()
	}
}

// OuterRing returns the ring this ring is nested inside, or nil if it is
// an outer ring.
func (r *Ring) OuterRing() *Ring { return r.outer }

// SetOuterRing records that this ring is a hole of outer. A ring that
// already owns inner rings cannot become a hole: holes of holes do not
// exist. Call it at most once per assembly attempt, before any
// AddInnerRing on this ring.
func (r *Ring) SetOuterRing(outer *Ring) {
	if outer == nil {
		panic("area: SetOuterRing with nil ring")
	}
	if len(r.inner) > 0 {
		panic("area: SetOuterRing on a ring that owns inner rings")
	}
	r.outer = outer
}

// InnerRings returns the holes nested directly inside this ring. The slice
// is the ring's own backing storage; callers must not modify it.
func (r *Ring) InnerRings() []*Ring { return r.inner }

// AddInnerRing records a hole inside this ring. A ring that is itself a
// hole cannot own holes.
func (r *Ring) AddInnerRing(ring *Ring) {
	if ring == nil {
		panic("area: AddInnerRing with nil ring")
	}
	if r.outer != nil {
		panic("area: AddInnerRing on an inner ring")
	}
	r.inner = append(r.inner, ring)
}

// IsOuter reports whether this ring is an outer ring (not nested inside
// any other ring).
func (r *Ring) IsOuter() bool { return r.outer == nil }

// Reset clears the nesting links and un-finalizes the direction flag of
// every member segment, making the ring usable in a fresh nesting and
// orientation attempt over the same segment pool. The segment chain and
// the area sum are kept.
func (r *Ring) Reset() {
	r.inner = nil
	r.outer = nil
	for _, seg := range r.segments {
		seg.directionDone = false
	}
}

// CollectWays adds the ways that contributed segments to this ring to the
// given map, keyed by way id. Callers union several rings into one map for
// provenance or error attribution.
func (r *Ring) CollectWays(ways map[osm.WayID]*osm.Way) {
	for _, seg := range r.segments {
		if seg.way == nil {
			continue
		}
		ways[seg.way.ID] = seg.way
	}
}

// WayIDs returns the distinct ids of the ways that contributed segments to
// this ring, sorted.
func (r *Ring) WayIDs() []osm.WayID {
	ways := make(map[osm.WayID]*osm.Way)
	r.CollectWays(ways)
	ids := make([]osm.WayID, 0, len(ways))
	for id := range ways {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// String renders the ring's endpoint trace and classification, for
// diagnostics: "Ring #7 [100,101,102,100]-OUTER".
func (r *Ring) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ring #%d [", r.num)
	if len(r.segments) > 0 {
		fmt.Fprintf(&b, "%d", r.segments[0].Start().ID)
	}
	for _, seg := range r.segments {
		fmt.Fprintf(&b, ",%d", seg.Stop().ID)
	}
	b.WriteString("]-")
	if r.IsOuter() {
		b.WriteString("OUTER")
	} else {
		b.WriteString("INNER")
	}
	return b.String()
}
