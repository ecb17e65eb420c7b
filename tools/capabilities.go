package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hospital-agent/backend"
	"hospital-agent/config"
	"hospital-agent/fuzzy"
	"hospital-agent/search"

	"go.uber.org/zap"
)

// Gateway is the slice of the backend client the capabilities use directly,
// beyond what the search engine already covers.
type Gateway interface {
	AllHospitals(ctx context.Context) ([]backend.Hospital, error)
	TestByID(ctx context.Context, id int) (*backend.Test, error)
	TestsByType(ctx context.Context, testType string) ([]backend.Test, error)
	TestsByHospital(ctx context.Context, hospitalID int) ([]backend.Test, error)
	FeedbackForHospital(ctx context.Context, hospitalID int) ([]backend.Feedback, error)
}

type capabilities struct {
	engine *search.Engine
	gw     Gateway
	cfg    *config.Config
	logger *zap.Logger
}

// NewRegistry builds the registry with all six capabilities bound.
func NewRegistry(engine *search.Engine, gw Gateway, cfg *config.Config, logger *zap.Logger) *Registry {
	c := &capabilities{
		engine: engine,
		gw:     gw,
		cfg:    cfg,
		logger: logger,
	}

	r := newRegistry(logger)
	r.register("hospital_search", c.hospitalSearch)
	r.register("get_test_by_id", c.getTestByID)
	r.register("get_tests_by_type", c.getTestsByType)
	r.register("get_tests_by_hospital_name_or_id", c.getTestsByHospital)
	r.register("get_hospital_feedbacks", c.getHospitalFeedbacks)
	r.register("doctor_search", c.doctorSearch)
	return r
}

type hospitalSearchArgs struct {
	TestTypes     []string `json:"test_types"`
	CostRanges    []string `json:"cost_ranges"`
	HospitalTypes []string `json:"hospital_types"`
	ICUMin        *int     `json:"icu_min"`
	City          string   `json:"city"`
	Thana         string   `json:"thana"`
	PO            string   `json:"po"`
	ZoneID        *int     `json:"zone_id"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	RadiusKm      *float64 `json:"radius_km"`
	HospitalName  string   `json:"hospital_name"`
	TopN          int      `json:"top_n"`
}

func (c *capabilities) hospitalSearch(ctx context.Context, raw json.RawMessage) string {
	var args hospitalSearchArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "Error: invalid arguments: " + err.Error()
	}

	ranked, err := c.engine.SearchHospitals(ctx, search.HospitalFilter{
		TestTypes:     args.TestTypes,
		CostRanges:    args.CostRanges,
		HospitalTypes: args.HospitalTypes,
		ICUMin:        args.ICUMin,
		City:          args.City,
		Thana:         args.Thana,
		PO:            args.PO,
		ZoneID:        args.ZoneID,
		Latitude:      args.Latitude,
		Longitude:     args.Longitude,
		RadiusKm:      args.RadiusKm,
		HospitalName:  args.HospitalName,
		TopN:          args.TopN,
	})
	if err != nil {
		return errorString(err)
	}
	return marshalResult(ranked)
}

type testByIDArgs struct {
	ID int `json:"id"`
}

func (c *capabilities) getTestByID(ctx context.Context, raw json.RawMessage) string {
	var args testByIDArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "Error: invalid arguments: " + err.Error()
	}

	test, err := c.gw.TestByID(ctx, args.ID)
	if err != nil {
		return errorString(err)
	}
	return marshalResult(test)
}

type testsByTypeArgs struct {
	Type string `json:"type"`
}

func (c *capabilities) getTestsByType(ctx context.Context, raw json.RawMessage) string {
	var args testsByTypeArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "Error: invalid arguments: " + err.Error()
	}

	// Canonicalize a misspelled type when possible; otherwise pass the raw
	// token through and let the service reject it.
	testType := args.Type
	if m, ok := fuzzy.MatchBest(testType, backend.TestTypes, c.threshold()); ok {
		testType = m
	}

	tests, err := c.gw.TestsByType(ctx, testType)
	if err != nil {
		return errorString(err)
	}
	return marshalResult(tests)
}

type hospitalRefArgs struct {
	HospitalID   *int    `json:"hospitalId"`
	HospitalName *string `json:"hospitalName"`
}

func (c *capabilities) getTestsByHospital(ctx context.Context, raw json.RawMessage) string {
	var args hospitalRefArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "Error: invalid arguments: " + err.Error()
	}
	if args.HospitalID == nil && args.HospitalName == nil {
		return "Error: Either hospitalId or hospitalName must be provided"
	}

	hospitalID, errStr := c.resolveHospitalID(ctx, args)
	if errStr != "" {
		return errStr
	}

	tests, err := c.gw.TestsByHospital(ctx, hospitalID)
	if err != nil {
		return errorString(err)
	}
	return marshalResult(tests)
}

func (c *capabilities) getHospitalFeedbacks(ctx context.Context, raw json.RawMessage) string {
	var args hospitalRefArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "Error: invalid arguments: " + err.Error()
	}
	if args.HospitalID == nil && args.HospitalName == nil {
		return "Error: Either hospitalId or hospitalName must be provided"
	}

	hospitalID, errStr := c.resolveHospitalID(ctx, args)
	if errStr != "" {
		return errStr
	}

	feedbacks, err := c.gw.FeedbackForHospital(ctx, hospitalID)
	if err != nil {
		return errorString(err)
	}
	return marshalResult(feedbacks)
}

type doctorSearchArgs struct {
	Specialties  []string `json:"specialties"`
	Department   string   `json:"department"`
	DoctorName   string   `json:"doctor_name"`
	City         string   `json:"city"`
	HospitalName string   `json:"hospital_name"`
	TopN         int      `json:"top_n"`
}

func (c *capabilities) doctorSearch(ctx context.Context, raw json.RawMessage) string {
	var args doctorSearchArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "Error: invalid arguments: " + err.Error()
	}

	doctors, err := c.engine.SearchDoctors(ctx, search.DoctorFilter{
		Specialties:  args.Specialties,
		Department:   args.Department,
		Name:         args.DoctorName,
		City:         args.City,
		HospitalName: args.HospitalName,
		TopN:         args.TopN,
	})
	if err != nil {
		return errorString(err)
	}
	return marshalResult(doctors)
}

// resolveHospitalID turns an id-or-name reference into a hospital id. A name
// that matches no hospital at the similarity threshold is an error string,
// never an exception.
func (c *capabilities) resolveHospitalID(ctx context.Context, args hospitalRefArgs) (int, string) {
	if args.HospitalID != nil {
		return *args.HospitalID, ""
	}

	hospitals, err := c.gw.AllHospitals(ctx)
	if err != nil {
		return 0, errorString(err)
	}

	names := make([]string, len(hospitals))
	for i, h := range hospitals {
		names[i] = h.Name
	}
	matched, ok := fuzzy.MatchBest(*args.HospitalName, names, c.threshold())
	if !ok {
		return 0, fmt.Sprintf("Error: No hospital found matching '%s'", *args.HospitalName)
	}
	for _, h := range hospitals {
		if h.Name == matched {
			return h.ID, ""
		}
	}
	// Unreachable: matched came from names.
	return 0, fmt.Sprintf("Error: No hospital found matching '%s'", *args.HospitalName)
}

func (c *capabilities) threshold() int {
	if c.cfg.FuzzyMatchThreshold > 0 {
		return c.cfg.FuzzyMatchThreshold
	}
	return fuzzy.DefaultThreshold
}

func unmarshalArgs(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}

// errorString renders a capability failure the way the model expects it:
// upstream failures carry the status code, everything else the message.
func errorString(err error) string {
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("Error: %d", statusErr.Code)
	}
	return "Error: " + err.Error()
}

func marshalResult(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "Error: " + err.Error()
	}
	return string(data)
}
