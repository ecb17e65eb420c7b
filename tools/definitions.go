package tools

import "github.com/tmc/langchaingo/llms"

// Definitions returns the tool descriptors bound to the model. The schemas
// mirror the capability argument structs; descriptions tell the model that
// typos are tolerated so it forwards user input instead of guessing.
func Definitions() []llms.Tool {
	return []llms.Tool{
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name: "hospital_search",
				Description: "Search for hospitals by test types, cost ranges, hospital types, ICU count, city, " +
					"thana, post office, zone, hospital name, or location proximity. All arguments are optional " +
					"and typos are tolerated for string fields and enums. Results are ranked by average feedback rating.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"test_types": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Test types to filter hospitals by (e.g., BLOOD, HEART). Typos allowed.",
						},
						"cost_ranges": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Cost ranges to filter hospitals by (e.g., LOW, MODERATE, HIGH). Typos allowed.",
						},
						"hospital_types": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Hospital types to filter by (e.g., GENERAL, PUBLIC, PRIVATE). Typos allowed.",
						},
						"icu_min": map[string]any{
							"type":        "integer",
							"description": "Minimum number of ICU units required.",
						},
						"city": map[string]any{
							"type":        "string",
							"description": "City name to filter hospitals by. Typos allowed.",
						},
						"thana": map[string]any{
							"type":        "string",
							"description": "Thana/Upazila to filter hospitals by. Typos allowed.",
						},
						"po": map[string]any{
							"type":        "string",
							"description": "Post office to filter hospitals by. Typos allowed.",
						},
						"zone_id": map[string]any{
							"type":        "integer",
							"description": "Zone ID to filter hospitals by.",
						},
						"latitude": map[string]any{
							"type":        "number",
							"description": "Latitude for proximity search.",
						},
						"longitude": map[string]any{
							"type":        "number",
							"description": "Longitude for proximity search.",
						},
						"radius_km": map[string]any{
							"type":        "number",
							"description": "Radius in kilometers for proximity search.",
						},
						"hospital_name": map[string]any{
							"type":        "string",
							"description": "Hospital name to filter by. Typos allowed.",
						},
						"top_n": map[string]any{
							"type":        "integer",
							"description": "Number of hospitals to return. Defaults to 5.",
						},
					},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        "get_test_by_id",
				Description: "Get test details by test ID.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "integer",
							"description": "The unique identifier of the test.",
						},
					},
					"required": []string{"id"},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        "get_tests_by_type",
				Description: "Get tests by type.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type":        "string",
							"description": "Type of medical test (e.g., BLOOD, HEART, GENERAL). Typos allowed.",
						},
					},
					"required": []string{"type"},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        "get_tests_by_hospital_name_or_id",
				Description: "Get all tests offered by a specific hospital. Either hospitalId or hospitalName must be provided.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"hospitalId": map[string]any{
							"type":        "integer",
							"description": "The unique identifier of the hospital.",
						},
						"hospitalName": map[string]any{
							"type":        "string",
							"description": "The name of the hospital. Typos allowed.",
						},
					},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        "get_hospital_feedbacks",
				Description: "Get all feedback entries for a specific hospital. Either hospitalId or hospitalName must be provided.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"hospitalId": map[string]any{
							"type":        "integer",
							"description": "The unique identifier of the hospital.",
						},
						"hospitalName": map[string]any{
							"type":        "string",
							"description": "The name of the hospital. Typos allowed.",
						},
					},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name: "doctor_search",
				Description: "Search for doctors by specialties, department, doctor name, city, or hospital affiliation. " +
					"All arguments are optional. Typos are tolerated for string fields.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"specialties": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Medical specialties to filter doctors by (e.g., Cardiology). Typos allowed.",
						},
						"department": map[string]any{
							"type":        "string",
							"description": "Department name to filter doctors by (e.g., Cardiology Department). Typos allowed.",
						},
						"doctor_name": map[string]any{
							"type":        "string",
							"description": "Doctor name to filter by. Typos allowed.",
						},
						"city": map[string]any{
							"type":        "string",
							"description": "City name to filter doctors by. Typos allowed.",
						},
						"hospital_name": map[string]any{
							"type":        "string",
							"description": "Hospital name to filter doctors by. Typos allowed.",
						},
						"top_n": map[string]any{
							"type":        "integer",
							"description": "Number of doctors to return. Defaults to 10.",
						},
					},
				},
			},
		},
	}
}
