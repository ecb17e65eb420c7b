package backend

// Typed record shapes for the four upstream services. Optional upstream
// fields are pointers so "absent" stays distinguishable from zero values;
// the filter pipeline relies on that distinction.

// Canonical enum values accepted by the hospital and test services.
var (
	HospitalTypes = []string{
		"PUBLIC", "PRIVATE", "GENERAL", "SPECIALIZED",
		"CHILDREN", "MATERNITY", "RESEARCH", "REHABILITATION",
	}
	CostRanges = []string{
		"VERY_LOW", "LOW", "MODERATE", "HIGH", "VERY_HIGH",
	}
	TestTypes = []string{
		"BLOOD", "HEART", "BRAIN", "LUNG", "EYE",
		"BONE", "SKIN", "GENERAL", "LIVER", "KIDNEY",
	}
)

// Location is the shared address block attached to hospitals and doctors.
type Location struct {
	ID           int     `json:"id"`
	LocationType *string `json:"locationType,omitempty"`
	Address      *string `json:"address,omitempty"`
	Thana        *string `json:"thana,omitempty"`
	PO           *string `json:"po,omitempty"`
	City         *string `json:"city,omitempty"`
	PostalCode   *int    `json:"postalCode,omitempty"`
	ZoneID       *int    `json:"zoneId,omitempty"`
}

// Hospital as returned by the hospital service.
type Hospital struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber *string   `json:"phoneNumber,omitempty"`
	Website     *string   `json:"website,omitempty"`
	Types       []string  `json:"types"`
	ICUs        *int      `json:"icus,omitempty"`
	CostRange   string    `json:"costRange"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Location    *Location `json:"locationResponse,omitempty"`
}

// Test as returned by the test service. Each test embeds the hospital that
// offers it, which the search engine mines for test-type filtering.
type Test struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Types    []string  `json:"types"`
	Price    float64   `json:"price"`
	Hospital *Hospital `json:"hospitalResponse,omitempty"`
}

// Feedback as returned by the feedback service. Rating may be absent.
type Feedback struct {
	ID         int    `json:"id"`
	UserID     string `json:"userId"`
	TargetType string `json:"targetType"`
	TargetID   int    `json:"targetId"`
	Rating     *int   `json:"rating,omitempty"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"createdAt"`
}

// Department a doctor belongs to.
type Department struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DoctorHospital is one hospital affiliation of a doctor.
type DoctorHospital struct {
	ID               int      `json:"id"`
	HospitalID       int      `json:"hospitalId"`
	HospitalName     string   `json:"hospitalName"`
	AppointmentFee   float64  `json:"appointmentFee"`
	WeeklySchedules  []string `json:"weeklySchedules"`
	AppointmentTimes []string `json:"appointmentTimes"`
}

// Doctor as returned by the doctor service.
type Doctor struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Specialties []string         `json:"specialties"`
	PhoneNumber string           `json:"phoneNumber"`
	Email       string           `json:"email"`
	Department  *Department      `json:"departmentResponse,omitempty"`
	Location    *Location        `json:"locationResponse,omitempty"`
	Hospitals   []DoctorHospital `json:"doctorHospitals"`
}
