package store

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/routesafe/backend/internal/domain"
)

// recordItem adapts an accident record to the rtreego Spatial interface.
// Records are points, stored as near-degenerate rects.
type recordItem struct {
	rect *rtreego.Rect
	rec  *domain.AccidentRecord
}

func (it *recordItem) Bounds() rtreego.Rect {
	return *it.rect
}

// Store is a read-only spatial index over the loaded accident dataset.
// It is built once at startup and never mutated, so concurrent readers
// need no locking.
type Store struct {
	tree    *rtreego.Rtree
	records []domain.AccidentRecord
	report  domain.LoadReport
}

// pointExtent keeps rects non-degenerate; rtreego rejects zero lengths.
const pointExtent = 1e-9

// New indexes the given records. Records with non-finite coordinates are
// skipped rather than poisoning the tree.
func New(records []domain.AccidentRecord, report domain.LoadReport) *Store {
	tree := rtreego.NewTree(2, 25, 50)
	for i := range records {
		rec := &records[i]
		if !finite(rec.Latitude) || !finite(rec.Longitude) {
			continue
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{rec.Longitude, rec.Latitude},
			[]float64{pointExtent, pointExtent},
		)
		if err != nil {
			continue
		}
		tree.Insert(&recordItem{rect: &rect, rec: rec})
	}
	return &Store{tree: tree, records: records, report: report}
}

// Within returns every indexed record inside the bounding box. The box is
// the cheap pre-filter; callers still apply the exact distance test.
func (s *Store) Within(box domain.BoundingBox) []*domain.AccidentRecord {
	lngSpan := box.MaxLng - box.MinLng
	latSpan := box.MaxLat - box.MinLat
	if lngSpan <= 0 || latSpan <= 0 {
		return nil
	}

	rect, err := rtreego.NewRect(
		rtreego.Point{box.MinLng, box.MinLat},
		[]float64{lngSpan, latSpan},
	)
	if err != nil {
		return nil
	}

	items := s.tree.SearchIntersect(rect)
	out := make([]*domain.AccidentRecord, 0, len(items))
	for _, item := range items {
		it := item.(*recordItem)
		// SearchIntersect matches on the rect extent; re-check the point
		// itself so the box boundary stays inclusive and exact.
		if box.Contains(it.rec.Latitude, it.rec.Longitude) {
			out = append(out, it.rec)
		}
	}
	return out
}

// All returns the full record slice for whole-dataset statistics.
// Callers must not mutate it.
func (s *Store) All() []domain.AccidentRecord {
	return s.records
}

// Len reports the number of loaded records.
func (s *Store) Len() int {
	return len(s.records)
}

// Report returns the validation report from the load boundary.
func (s *Store) Report() domain.LoadReport {
	return s.report
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
