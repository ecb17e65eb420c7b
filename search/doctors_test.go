package search

import (
	"context"
	"errors"
	"testing"

	"hospital-agent/backend"
)

func doctorFixtures() []backend.Doctor {
	return []backend.Doctor{
		{
			ID:          1,
			Name:        "Dr. Rahim Uddin",
			Specialties: []string{"CARDIOLOGY", "MEDICINE"},
			Department:  &backend.Department{ID: 1, Name: "Cardiology"},
			Location:    &backend.Location{ID: 1, City: strPtr("Dhaka")},
			Hospitals: []backend.DoctorHospital{
				{ID: 1, HospitalID: 1, HospitalName: "Dhaka Medical"},
			},
		},
		{
			ID:          2,
			Name:        "Dr. Salma Khatun",
			Specialties: []string{"NEUROLOGY"},
			Department:  &backend.Department{ID: 2, Name: "Neurology"},
			Location:    &backend.Location{ID: 2, City: strPtr("Khulna")},
			Hospitals: []backend.DoctorHospital{
				{ID: 2, HospitalID: 2, HospitalName: "Khulna General"},
			},
		},
		{
			ID:          3,
			Name:        "Dr. Karim Ahmed",
			Specialties: []string{"CARDIOLOGY"},
			// No department and no location on record.
		},
	}
}

func doctorIDs(doctors []backend.Doctor) []int {
	ids := make([]int, len(doctors))
	for i, d := range doctors {
		ids[i] = d.ID
	}
	return ids
}

func TestSearchDoctors(t *testing.T) {
	tests := []struct {
		name    string
		filter  DoctorFilter
		wantIDs []int
	}{
		{
			name:    "no_filter_returns_all",
			filter:  DoctorFilter{},
			wantIDs: []int{1, 2, 3},
		},
		{
			name:    "specialty_any_match",
			filter:  DoctorFilter{Specialties: []string{"CARDIOLOGY"}},
			wantIDs: []int{1, 3},
		},
		{
			name:    "specialty_tolerates_typo",
			filter:  DoctorFilter{Specialties: []string{"NEUROLGY"}},
			wantIDs: []int{2},
		},
		{
			name:    "department_missing_record_excluded",
			filter:  DoctorFilter{Department: "Cardiology"},
			wantIDs: []int{1},
		},
		{
			name:    "city_missing_record_excluded",
			filter:  DoctorFilter{City: "Dhaka"},
			wantIDs: []int{1},
		},
		{
			name:    "name_fuzzy",
			filter:  DoctorFilter{Name: "Dr. Salma Khatu"},
			wantIDs: []int{2},
		},
		{
			name:    "hospital_affiliation",
			filter:  DoctorFilter{HospitalName: "Khulna General"},
			wantIDs: []int{2},
		},
		{
			name:    "combined_filters_all_must_hold",
			filter:  DoctorFilter{Specialties: []string{"CARDIOLOGY"}, City: "Dhaka"},
			wantIDs: []int{1},
		},
		{
			name:    "no_match",
			filter:  DoctorFilter{Department: "Oncology"},
			wantIDs: nil,
		},
		{
			name:    "top_n_truncates_in_fetch_order",
			filter:  DoctorFilter{TopN: 2},
			wantIDs: []int{1, 2},
		},
	}

	gw := &fakeGateway{doctors: doctorFixtures()}
	engine := newTestEngine(gw)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := engine.SearchDoctors(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("SearchDoctors returned error: %v", err)
			}
			got := doctorIDs(results)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("got %v, want %v", got, tt.wantIDs)
				}
			}
		})
	}
}

func TestSearchDoctorsFetchFailure(t *testing.T) {
	gw := &fakeGateway{doctorsErr: errors.New("doctor service down")}
	engine := newTestEngine(gw)

	if _, err := engine.SearchDoctors(context.Background(), DoctorFilter{}); err == nil {
		t.Fatal("expected error when the doctor fetch fails")
	}
}
