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
	"fmt"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/remyleone/osm2pgsql/osm"
)

// Assembly errors. They are wrapped with the failing area's id; use
// errors.Is to test for them.
var (
	// ErrNotClosed is returned by AssembleWay for a way whose ends do not
	// meet.
	ErrNotClosed = errors.New("way is not closed")

	// ErrNoSegments is returned when extraction and duplicate removal
	// leave nothing to build rings from.
	ErrNoSegments = errors.New("no usable segments")

	// ErrOpenRing is returned when the segments run out before every ring
	// closes: the input geometry has a gap.
	ErrOpenRing = errors.New("cannot close ring")

	// ErrInvalidLocation is returned when a way references a node whose
	// location is missing or outside the world bounds.
	ErrInvalidLocation = errors.New("node location is missing or invalid")
)

// ProblemKind classifies non-fatal defects found while assembling.
type ProblemKind int

const (
	// ProblemDuplicateNode: a way repeats a location in consecutive
	// nodes; the zero-length segment is skipped.
	ProblemDuplicateNode ProblemKind = iota

	// ProblemDuplicateSegment: two ways trace the same segment; the pair
	// cancels and is removed.
	ProblemDuplicateSegment

	// ProblemMissingLocation: a way references a node whose location is
	// unset or out of bounds. Fatal for the area.
	ProblemMissingLocation

	// ProblemOpenRing: a chain could not be closed. Fatal for the area,
	// reported with the contributing ways.
	ProblemOpenRing

	// ProblemRoleMismatch: a way's relation role contradicts the
	// geometric outer/inner classification. The geometry wins.
	ProblemRoleMismatch

	// ProblemInvalidNesting: a containment probe placed a hole under a
	// container that is itself a hole.
	ProblemInvalidNesting

	// ProblemHoleOutsizesShell: a containment probe nested a ring inside
	// a ring of smaller area, a sign the probe grazed a shared boundary.
	ProblemHoleOutsizesShell
)

func (k ProblemKind) String() string {
	switch k {
	case ProblemDuplicateNode:
		return "duplicate node"
	case ProblemDuplicateSegment:
		return "duplicate segment"
	case ProblemMissingLocation:
		return "missing location"
	case ProblemOpenRing:
		return "open ring"
	case ProblemRoleMismatch:
		return "role mismatch"
	case ProblemInvalidNesting:
		return "invalid nesting"
	case ProblemHoleOutsizesShell:
		return "hole bigger than shell"
	}
	return "unknown problem"
}

// Problem describes one non-fatal defect in the input of an assembly run,
// attributed to the ways that caused it.
type Problem struct {
	Kind     ProblemKind
	WayIDs   []osm.WayID
	Location osm.Location
}

func (p Problem) String() string {
	var b strings.Builder
	b.WriteString(p.Kind.String())
	if len(p.WayIDs) > 0 {
		fmt.Fprintf(&b, " ways=%v", p.WayIDs)
	}
	if p.Location.Valid() {
		fmt.Fprintf(&b, " at %s", p.Location)
	}
	return b.String()
}

// Stats counts what an assembler has processed across all its runs.
type Stats struct {
	Ways              int
	Segments          int
	DuplicateNodes    int
	DuplicateSegments int // cancelled pairs
	RingsBuilt        int
	RingsJoined       int
	InnerRings        int
	NestingRetries    int
	AreasCreated      int
}

// Config controls an Assembler.
type Config struct {
	// ProblemHandler receives non-fatal input defects as they are found.
	// Optional; problems are always counted in Stats and logged at debug
	// level regardless.
	ProblemHandler func(Problem)
}

// Assembler builds areas from closed ways and multipolygon relations. It
// owns the join planning, the containment decisions, and the emission of
// the final geometry; the Ring type executes its instructions.
//
// An Assembler must not be shared between goroutines. Parallel assembly
// works across independent assemblers over disjoint segment pools.
type Assembler struct {
	cfg   Config
	stats Stats
}

// NewAssembler creates an assembler with the given configuration.
func NewAssembler(cfg Config) *Assembler {
	return &Assembler{cfg: cfg}
}

// Stats returns the counters accumulated so far.
func (a *Assembler) Stats() Stats { return a.stats }

func (a *Assembler) report(p Problem) {
	switch p.Kind {
	case ProblemDuplicateNode:
		a.stats.DuplicateNodes++
	case ProblemDuplicateSegment:
		a.stats.DuplicateSegments++
	}
	logger().Debug("assembly problem", "problem", p.String())
	if a.cfg.ProblemHandler != nil {
		a.cfg.ProblemHandler(p)
	}
}

// AssembleWay builds an area from a single closed way.
func (a *Assembler) AssembleWay(way *osm.Way) (*Area, error) {
	if !way.IsClosed() {
		return nil, fmt.Errorf("way %d: %w", way.ID, ErrNotClosed)
	}
	return a.assemble(osm.AreaIDFromWay(way.ID), []memberWay{{way, RoleOuter}})
}

// AssembleRelation builds an area from a multipolygon relation. The ways
// are the relation's resolved way members; their roles are read from the
// relation's member list, matched by way id. Roles are advisory only: the
// outer/inner structure is derived from the geometry and mismatches are
// reported as problems.
func (a *Assembler) AssembleRelation(rel *osm.Relation, ways []*osm.Way) (*Area, error) {
	roles := make(map[int64]Role, len(rel.Members))
	for _, m := range rel.Members {
		if m.Type == osm.TypeWay {
			roles[m.Ref] = RoleFromString(m.Role)
		}
	}
	members := make([]memberWay, 0, len(ways))
	for _, w := range ways {
		members = append(members, memberWay{w, roles[int64(w.ID)]})
	}
	return a.assemble(osm.AreaIDFromRelation(rel.ID), members)
}

type memberWay struct {
	way  *osm.Way
	role Role
}

func (a *Assembler) assemble(id osm.AreaID, members []memberWay) (*Area, error) {
	list := NewSegmentList(a.report)
	for _, m := range members {
		if err := list.ExtractFromWay(m.way, m.role); err != nil {
			return nil, fmt.Errorf("area %d: %w", id, err)
		}
	}
	a.stats.Ways += len(members)

	list.Sort()
	removed := list.RemoveDuplicates()
	usable := list.Len() - removed
	if usable == 0 {
		return nil, fmt.Errorf("area %d: %w", id, ErrNoSegments)
	}
	a.stats.Segments += usable

	rings, err := a.buildRings(list)
	if err != nil {
		return nil, fmt.Errorf("area %d: %w", id, err)
	}
	a.stats.RingsBuilt += len(rings)

	a.nestAndFix(rings)
	a.checkRoles(rings)

	ways := make(map[osm.WayID]*osm.Way)
	for _, r := range rings {
		r.CollectWays(ways)
	}
	area := &Area{
		ID:       id,
		Geometry: buildGeometry(rings),
		Ways:     sortedWays(ways),
	}
	a.stats.AreasCreated++
	logger().Debug("area assembled",
		"id", int64(id), "polygons", len(area.Geometry), "rings", len(rings))
	return area, nil
}

// chainWays builds the initial chains: each way's usable segments are
// appended in extraction order, which within one way is chain order. A
// removed segment splits its way's chain.
func chainWays(list *SegmentList) []*Ring {
	var rings []*Ring
	var cur *Ring
	var prev *Segment
	for i := 0; i < list.Len(); i++ {
		seg := list.Get(i)
		if seg.removed {
			cur, prev = nil, nil
			continue
		}
		if cur != nil && prev.way == seg.way && cur.Stop().Location == seg.Start().Location {
			cur.AppendBack(seg)
		} else {
			cur = NewRing(seg)
			rings = append(rings, cur)
		}
		prev = seg
	}
	return rings
}

// buildRings chains the segments into closed rings: per-way chains first,
// then open chains are joined at matching endpoints, forward or backward,
// until everything closes or no pair connects anymore.
func (a *Assembler) buildRings(list *SegmentList) ([]*Ring, error) {
	var open, closed []*Ring
	for _, r := range chainWays(list) {
		if r.IsClosed() {
			closed = append(closed, r)
		} else {
			open = append(open, r)
		}
	}

	for len(open) > 1 {
		if !a.joinOne(open) {
			break
		}
		// One ring was drained and one grew; drop the former, promote any
		// closure.
		var next []*Ring
		for _, r := range open {
			switch {
			case len(r.Segments()) == 0:
				// drained by the join
			case r.IsClosed():
				closed = append(closed, r)
				logger().Debug("ring closed", "ring", r.String())
			default:
				next = append(next, r)
			}
		}
		open = next
	}

	if len(open) > 0 {
		ways := make(map[osm.WayID]*osm.Way)
		for _, r := range open {
			r.CollectWays(ways)
		}
		ids := sortedWayIDs(ways)
		a.report(Problem{
			Kind:     ProblemOpenRing,
			WayIDs:   ids,
			Location: open[0].Stop().Location,
		})
		return nil, fmt.Errorf("%d open ring(s), ways %v: %w", len(open), ids, ErrOpenRing)
	}
	return closed, nil
}

// joinOne finds the first pair of open rings with a shared endpoint and
// joins them, reporting whether a join happened. Three orientations arise;
// the fourth (other's stop meets this ring's start) is the first case seen
// from the other ring.
func (a *Assembler) joinOne(open []*Ring) bool {
	for _, r := range open {
		for _, s := range open {
			if r == s {
				continue
			}
			switch {
			case s.Start().Location == r.Stop().Location:
				r.JoinForward(s)
			case s.Stop().Location == r.Stop().Location:
				r.JoinBackward(s)
			case s.Start().Location == r.Start().Location:
				// Both chains leave from the same point: turn this one
				// around, then the other continues it.
				r.Reverse()
				r.JoinForward(s)
			default:
				continue
			}
			a.stats.RingsJoined++
			logger().Debug("rings joined", "ring", r.String())
			return true
		}
	}
	return false
}

// nestAndFix determines the outer/inner hierarchy and establishes the
// canonical winding. Containment probes start from the midpoint of each
// ring's minimum segment; if that strategy yields an implausible hierarchy
// the rings are reset and the smallest vertex is probed instead.
func (a *Assembler) nestAndFix(rings []*Ring) {
	if !a.nest(rings, midpointProbe) {
		a.stats.NestingRetries++
		for _, r := range rings {
			r.Reset()
		}
		if !a.nest(rings, vertexProbe) {
			logger().Debug("nesting fallback failed, keeping partial hierarchy")
		}
	}
	inner := 0
	for _, r := range rings {
		r.FixDirection()
		r.MarkDirectionDone()
		if !r.IsOuter() {
			inner++
		}
	}
	a.stats.InnerRings += inner
}

// nest classifies rings by containment depth: even depth makes an outer
// ring, odd depth a hole of its innermost container. Reports false if the
// probes produce a hierarchy that cannot be right, leaving whatever links
// were already made for the caller to reset.
func (a *Assembler) nest(rings []*Ring, probe func(*Ring) orb.Point) bool {
	if len(rings) < 2 {
		return true
	}
	geoms := make([]orb.Ring, len(rings))
	for i, r := range rings {
		geoms[i] = ringGeometry(r)
	}

	// The minimum segment lies on its ring's convex hull, so a probe on it
	// is extremal and rarely ambiguous.
	containers := make([][]int, len(rings))
	depth := make([]int, len(rings))
	for i, r := range rings {
		p := probe(r)
		for j := range rings {
			if i == j {
				continue
			}
			if planar.RingContains(geoms[j], p) {
				containers[i] = append(containers[i], j)
			}
		}
		depth[i] = len(containers[i])
	}

	for i, r := range rings {
		if depth[i]%2 == 0 {
			continue
		}
		parent := -1
		for _, j := range containers[i] {
			if parent < 0 || depth[j] > depth[parent] {
				parent = j
			}
		}
		if parent < 0 || depth[parent]%2 != 0 {
			// The innermost container of a hole must be an outer ring.
			a.report(Problem{
				Kind:     ProblemInvalidNesting,
				WayIDs:   r.WayIDs(),
				Location: r.MinSegment().First().Location,
			})
			return false
		}
		if abs64(r.Sum()) > abs64(rings[parent].Sum()) {
			// A hole cannot outgrow its shell.
			a.report(Problem{
				Kind:     ProblemHoleOutsizesShell,
				WayIDs:   r.WayIDs(),
				Location: r.MinSegment().First().Location,
			})
			return false
		}
		r.SetOuterRing(rings[parent])
		rings[parent].AddInnerRing(r)
		logger().Debug("ring nested", "inner", r.String(), "outer", rings[parent].String())
	}
	return true
}

func midpointProbe(r *Ring) orb.Point {
	s := r.MinSegment()
	a := s.First().Location
	b := s.Second().Location
	return orb.Point{(a.Lon() + b.Lon()) / 2, (a.Lat() + b.Lat()) / 2}
}

func vertexProbe(r *Ring) orb.Point {
	l := r.MinSegment().First().Location
	return orb.Point{l.Lon(), l.Lat()}
}

// checkRoles reports ways whose relation role contradicts the geometric
// classification. Roles never change the result; the geometry wins.
func (a *Assembler) checkRoles(rings []*Ring) {
	for _, r := range rings {
		var bad map[osm.WayID]*osm.Way
		for _, seg := range r.Segments() {
			role := seg.Role()
			if role == RoleNone {
				continue
			}
			mismatch := (role == RoleInner && r.IsOuter()) ||
				(role == RoleOuter && !r.IsOuter())
			if !mismatch || seg.Way() == nil {
				continue
			}
			if bad == nil {
				bad = make(map[osm.WayID]*osm.Way)
			}
			bad[seg.Way().ID] = seg.Way()
		}
		if len(bad) > 0 {
			a.report(Problem{
				Kind:     ProblemRoleMismatch,
				WayIDs:   sortedWayIDs(bad),
				Location: r.MinSegment().First().Location,
			})
		}
	}
}

// buildGeometry emits one polygon per outer ring: the boundary followed by
// its holes, everything ordered by minimum segment so output is
// deterministic.
func buildGeometry(rings []*Ring) orb.MultiPolygon {
	var outers []*Ring
	for _, r := range rings {
		if r.IsOuter() {
			outers = append(outers, r)
		}
	}
	sortRingsByMin(outers)

	mp := make(orb.MultiPolygon, 0, len(outers))
	for _, outer := range outers {
		polygon := orb.Polygon{ringGeometry(outer)}
		holes := append([]*Ring(nil), outer.InnerRings()...)
		sortRingsByMin(holes)
		for _, hole := range holes {
			polygon = append(polygon, ringGeometry(hole))
		}
		mp = append(mp, polygon)
	}
	return mp
}

func sortRingsByMin(rings []*Ring) {
	sort.Slice(rings, func(i, j int) bool {
		return rings[i].MinSegment().Less(rings[j].MinSegment())
	})
}

func sortedWays(ways map[osm.WayID]*osm.Way) []*osm.Way {
	out := make([]*osm.Way, 0, len(ways))
	for _, w := range ways {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedWayIDs(ways map[osm.WayID]*osm.Way) []osm.WayID {
	ids := make([]osm.WayID, 0, len(ways))
	for id := range ways {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
