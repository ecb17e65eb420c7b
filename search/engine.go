// Package search implements the multi-criteria hospital and doctor search:
// fuzzy enum normalization, per-category fetch and union, cross-category
// intersection, predicate filtering, feedback-based ranking, and top-N
// truncation.
package search

import (
	"context"
	"sort"
	"sync"

	"hospital-agent/backend"
	"hospital-agent/config"
	"hospital-agent/fuzzy"

	"go.uber.org/zap"
)

// Gateway is the slice of the backend client the engine needs.
type Gateway interface {
	AllHospitals(ctx context.Context) ([]backend.Hospital, error)
	HospitalsByType(ctx context.Context, hospitalType string) ([]backend.Hospital, error)
	HospitalsByCostRange(ctx context.Context, costRange string) ([]backend.Hospital, error)
	TestsByType(ctx context.Context, testType string) ([]backend.Test, error)
	FeedbackForHospital(ctx context.Context, hospitalID int) ([]backend.Feedback, error)
	AllDoctors(ctx context.Context) ([]backend.Doctor, error)
}

// HospitalFilter is the normalized argument set for one hospital search.
// Enum lists may still carry typos; the engine canonicalizes them itself.
type HospitalFilter struct {
	TestTypes     []string
	CostRanges    []string
	HospitalTypes []string
	ICUMin        *int
	City          string
	Thana         string
	PO            string
	ZoneID        *int
	Latitude      *float64
	Longitude     *float64
	RadiusKm      *float64
	HospitalName  string
	TopN          int
}

// DoctorFilter is the argument set for one doctor search. All fields are
// free-text fuzzy matches; a doctor must satisfy every supplied filter.
type DoctorFilter struct {
	Specialties  []string
	Department   string
	Name         string
	City         string
	HospitalName string
	TopN         int
}

// RankedHospital is a hospital annotated with its feedback ratings and
// their arithmetic mean, which determines its position in the results.
type RankedHospital struct {
	backend.Hospital
	Ratings       []int   `json:"ratings"`
	AverageRating float64 `json:"averageRating"`
}

type Engine struct {
	gw     Gateway
	cfg    *config.Config
	logger *zap.Logger
}

func New(gw Gateway, cfg *config.Config, logger *zap.Logger) *Engine {
	return &Engine{
		gw:     gw,
		cfg:    cfg,
		logger: logger,
	}
}

// SearchHospitals runs the full aggregation pipeline. The candidate pool is
// the intersection of the per-category unions (or the whole population when
// no category filter survives normalization); the pool is then narrowed by
// the scalar and free-text predicates, annotated with feedback ratings, and
// sorted by descending mean rating with the original fetch order preserved
// among ties.
func (e *Engine) SearchHospitals(ctx context.Context, filter HospitalFilter) ([]RankedHospital, error) {
	threshold := e.threshold()

	testTypes := fuzzy.NormalizeAll(filter.TestTypes, backend.TestTypes, threshold)
	costRanges := fuzzy.NormalizeAll(filter.CostRanges, backend.CostRanges, threshold)
	hospitalTypes := fuzzy.NormalizeAll(filter.HospitalTypes, backend.HospitalTypes, threshold)

	var pools [][]backend.Hospital
	if len(testTypes) > 0 {
		union := e.unionForValues(ctx, testTypes, func(ctx context.Context, v string) ([]backend.Hospital, error) {
			tests, err := e.gw.TestsByType(ctx, v)
			if err != nil {
				return nil, err
			}
			hospitals := make([]backend.Hospital, 0, len(tests))
			for _, t := range tests {
				if t.Hospital != nil {
					hospitals = append(hospitals, *t.Hospital)
				}
			}
			return hospitals, nil
		})
		if len(union) > 0 {
			pools = append(pools, union)
		}
	}
	if len(costRanges) > 0 {
		union := e.unionForValues(ctx, costRanges, e.gw.HospitalsByCostRange)
		if len(union) > 0 {
			pools = append(pools, union)
		}
	}
	if len(hospitalTypes) > 0 {
		union := e.unionForValues(ctx, hospitalTypes, e.gw.HospitalsByType)
		if len(union) > 0 {
			pools = append(pools, union)
		}
	}

	var pool []backend.Hospital
	if len(pools) == 0 {
		// No category filter supplied (or none survived normalization):
		// the whole population is the candidate pool.
		all, err := e.gw.AllHospitals(ctx)
		if err != nil {
			return nil, err
		}
		pool = all
	} else {
		pool = intersectByID(pools)
	}

	filtered := make([]backend.Hospital, 0, len(pool))
	for _, h := range pool {
		if e.matchesHospital(h, filter, threshold) {
			filtered = append(filtered, h)
		}
	}

	ranked := make([]RankedHospital, 0, len(filtered))
	for _, h := range filtered {
		ratings, avg := e.ratingsFor(ctx, h.ID)
		ranked = append(ranked, RankedHospital{
			Hospital:      h,
			Ratings:       ratings,
			AverageRating: avg,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageRating > ranked[j].AverageRating
	})

	topN := filter.TopN
	if topN <= 0 {
		topN = e.cfg.HospitalSearchTopN
	}
	if topN <= 0 {
		topN = 5
	}
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked, nil
}

// unionForValues fetches one record set per value concurrently and unions
// them, deduplicated by identifier. Order is deterministic: values in the
// caller's order, records in fetch order within each value, first
// appearance wins. A failed fetch contributes nothing.
func (e *Engine) unionForValues(ctx context.Context, values []string, fetch func(context.Context, string) ([]backend.Hospital, error)) []backend.Hospital {
	results := make([][]backend.Hospital, len(values))
	var wg sync.WaitGroup
	for i, v := range values {
		wg.Add(1)
		go func(i int, v string) {
			defer wg.Done()
			hospitals, err := fetch(ctx, v)
			if err != nil {
				e.logger.Warn("Category fetch failed, skipping value",
					zap.String("value", v),
					zap.Error(err))
				return
			}
			results[i] = hospitals
		}(i, v)
	}
	wg.Wait()

	seen := make(map[int]bool)
	var union []backend.Hospital
	for _, set := range results {
		for _, h := range set {
			if !seen[h.ID] {
				seen[h.ID] = true
				union = append(union, h)
			}
		}
	}
	return union
}

// intersectByID keeps the hospitals present in every pool. The first pool
// supplies the order of the result.
func intersectByID(pools [][]backend.Hospital) []backend.Hospital {
	counts := make(map[int]int)
	for _, pool := range pools {
		for _, h := range pool {
			counts[h.ID]++
		}
	}
	var common []backend.Hospital
	for _, h := range pools[0] {
		if counts[h.ID] == len(pools) {
			common = append(common, h)
		}
	}
	return common
}

// matchesHospital applies the scalar and free-text predicates in one pass.
// Fuzzy fields only apply when both the query and the record value are
// present; ZoneID is an exact match; records with a missing coordinate fail
// a geo filter outright.
func (e *Engine) matchesHospital(h backend.Hospital, filter HospitalFilter, threshold int) bool {
	if filter.ICUMin != nil {
		if h.ICUs == nil || *h.ICUs < *filter.ICUMin {
			return false
		}
	}

	loc := h.Location
	if filter.City != "" && loc != nil && loc.City != nil && *loc.City != "" {
		if !fuzzy.Match(filter.City, *loc.City, threshold) {
			return false
		}
	}
	if filter.Thana != "" && loc != nil && loc.Thana != nil && *loc.Thana != "" {
		if !fuzzy.Match(filter.Thana, *loc.Thana, threshold) {
			return false
		}
	}
	if filter.PO != "" && loc != nil && loc.PO != nil && *loc.PO != "" {
		if !fuzzy.Match(filter.PO, *loc.PO, threshold) {
			return false
		}
	}
	if filter.ZoneID != nil {
		if loc == nil || loc.ZoneID == nil || *loc.ZoneID != *filter.ZoneID {
			return false
		}
	}
	if filter.HospitalName != "" && h.Name != "" {
		if !fuzzy.Match(filter.HospitalName, h.Name, threshold) {
			return false
		}
	}

	if filter.Latitude != nil && filter.Longitude != nil && filter.RadiusKm != nil {
		if h.Latitude == nil || h.Longitude == nil {
			return false
		}
		dist := distanceKm(*filter.Latitude, *filter.Longitude, *h.Latitude, *h.Longitude)
		if dist > *filter.RadiusKm {
			return false
		}
	}

	return true
}

// ratingsFor fetches the feedback entries for a hospital and reduces them
// to a rating list and mean. A failed fetch degrades to no ratings rather
// than failing the search.
func (e *Engine) ratingsFor(ctx context.Context, hospitalID int) ([]int, float64) {
	feedbacks, err := e.gw.FeedbackForHospital(ctx, hospitalID)
	if err != nil {
		e.logger.Debug("Feedback fetch failed, degrading to empty ratings",
			zap.Int("hospital_id", hospitalID),
			zap.Error(err))
		return []int{}, 0
	}

	ratings := make([]int, 0, len(feedbacks))
	sum := 0
	for _, fb := range feedbacks {
		if fb.Rating != nil {
			ratings = append(ratings, *fb.Rating)
			sum += *fb.Rating
		}
	}
	if len(ratings) == 0 {
		return ratings, 0
	}
	return ratings, float64(sum) / float64(len(ratings))
}

func (e *Engine) threshold() int {
	if e.cfg.FuzzyMatchThreshold > 0 {
		return e.cfg.FuzzyMatchThreshold
	}
	return fuzzy.DefaultThreshold
}
