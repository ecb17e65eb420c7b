package search

import (
	"context"

	"hospital-agent/backend"
	"hospital-agent/fuzzy"
)

// SearchDoctors filters the full doctor population with per-field fuzzy
// predicates. There is no category intersection and no rating sort: results
// keep their fetch order and are truncated to TopN.
func (e *Engine) SearchDoctors(ctx context.Context, filter DoctorFilter) ([]backend.Doctor, error) {
	doctors, err := e.gw.AllDoctors(ctx)
	if err != nil {
		return nil, err
	}

	threshold := e.threshold()
	filtered := make([]backend.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if matchesDoctor(d, filter, threshold) {
			filtered = append(filtered, d)
		}
	}

	topN := filter.TopN
	if topN <= 0 {
		topN = e.cfg.DoctorSearchTopN
	}
	if topN <= 0 {
		topN = 10
	}
	if len(filtered) > topN {
		filtered = filtered[:topN]
	}
	return filtered, nil
}

func matchesDoctor(d backend.Doctor, filter DoctorFilter, threshold int) bool {
	// Specialties match when any query specialty is similar to any of the
	// doctor's specialties.
	if len(filter.Specialties) > 0 {
		matched := false
		for _, want := range filter.Specialties {
			for _, have := range d.Specialties {
				if fuzzy.Match(want, have, threshold) {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}

	if filter.Department != "" {
		if d.Department == nil || d.Department.Name == "" {
			return false
		}
		if !fuzzy.Match(filter.Department, d.Department.Name, threshold) {
			return false
		}
	}

	if filter.Name != "" {
		if d.Name == "" {
			return false
		}
		if !fuzzy.Match(filter.Name, d.Name, threshold) {
			return false
		}
	}

	if filter.City != "" {
		if d.Location == nil || d.Location.City == nil || *d.Location.City == "" {
			return false
		}
		if !fuzzy.Match(filter.City, *d.Location.City, threshold) {
			return false
		}
	}

	// Hospital affiliation matches when any of the doctor's hospitals is
	// similar to the queried name.
	if filter.HospitalName != "" {
		matched := false
		for _, affiliation := range d.Hospitals {
			if affiliation.HospitalName == "" {
				continue
			}
			if fuzzy.Match(filter.HospitalName, affiliation.HospitalName, threshold) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}
