package handlers

import (
	"encoding/json"
	"net/http"
)

// OpenAPISpec returns the OpenAPI 3.0 specification for the Yield Platform API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	weatherSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"avg_temp":      map[string]interface{}{"type": "number", "nullable": true},
			"high_temp":     map[string]interface{}{"type": "number", "nullable": true},
			"low_temp":      map[string]interface{}{"type": "number", "nullable": true},
			"rainfall_mm":   map[string]string{"type": "number"},
			"high_humidity": map[string]interface{}{"type": "number", "nullable": true},
			"low_humidity":  map[string]interface{}{"type": "number", "nullable": true},
		},
	}

	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "Yield Platform API",
			"description": "Crop-yield prediction service for West Bengal districts with live weather enrichment",
			"version":     "1.0.0",
			"contact": map[string]string{
				"name": "Yield Platform Team",
			},
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8080", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/reverse_geocode": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Resolve coordinates to a district and current weather",
					"description": "Reverse geocodes lat/lon to a district code and fetches current weather. Provider failures degrade to null values.",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"type":     "object",
									"required": []string{"lat", "lon"},
									"properties": map[string]interface{}{
										"lat": map[string]string{"type": "number"},
										"lon": map[string]string{"type": "number"},
									},
								},
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Resolved district and weather (fields may be null)",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"matched_district_name": map[string]string{"type": "string"},
											"district_code":         map[string]interface{}{"type": "integer", "nullable": true},
											"weather":               weatherSchema,
											"raw_lat":               map[string]string{"type": "number"},
											"raw_lon":               map[string]string{"type": "number"},
										},
									},
								},
							},
						},
						"400": map[string]interface{}{"description": "Missing lat/lon"},
					},
				},
			},
			"/predict": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Predict crop yield",
					"description": "Accepts form-encoded prediction inputs and returns the model's yield estimate",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/x-www-form-urlencoded": map[string]interface{}{
								"schema": map[string]interface{}{
									"type": "object",
									"required": []string{
										"State_Code", "District_Code", "Crop_Code", "Season_Code",
										"Major_Soil_Type", "Second_Major_Soil_Type", "Irrigation_Used",
										"Area_Hectares", "Production", "Year_Numeric",
									},
									"properties": map[string]interface{}{
										"State_Code":             map[string]string{"type": "integer"},
										"District_Code":          map[string]string{"type": "integer"},
										"Crop_Code":              map[string]string{"type": "integer"},
										"Season_Code":            map[string]string{"type": "integer"},
										"Major_Soil_Type":        map[string]string{"type": "string"},
										"Second_Major_Soil_Type": map[string]string{"type": "string"},
										"Irrigation_Used":        map[string]string{"type": "string"},
										"Area_Hectares":          map[string]string{"type": "number"},
										"Production":             map[string]string{"type": "number"},
										"Year_Numeric":           map[string]string{"type": "integer"},
										"High_Temp":              map[string]string{"type": "number"},
										"Low_Temp":               map[string]string{"type": "number"},
										"Avg_Temp":               map[string]string{"type": "number"},
										"Rainfall":               map[string]string{"type": "number"},
										"High_Humidity":          map[string]string{"type": "number"},
										"Low_Humidity":           map[string]string{"type": "number"},
									},
								},
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Yield prediction",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"prediction": map[string]string{"type": "number"},
										},
									},
								},
							},
						},
						"400": map[string]interface{}{"description": "Invalid form input"},
						"502": map[string]interface{}{"description": "Model server failure"},
					},
				},
			},
			"/api/catalog": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "List code tables",
					"description": "Returns the state, district, crop, and season code tables",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Code tables"},
					},
				},
			},
			"/api/predictions": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get prediction history",
					"description": "Retrieve served predictions with filtering and pagination (requires the history store)",
					"parameters": []map[string]interface{}{
						{
							"name":        "district_code",
							"in":          "query",
							"description": "Filter by district code",
							"required":    false,
							"schema":      map[string]string{"type": "integer"},
						},
						{
							"name":        "crop_code",
							"in":          "query",
							"description": "Filter by crop code",
							"required":    false,
							"schema":      map[string]string{"type": "integer"},
						},
						{
							"name":        "page",
							"in":          "query",
							"description": "Page number (default: 1)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "integer", "default": 1},
						},
						{
							"name":        "limit",
							"in":          "query",
							"description": "Records per page (default: 100)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "integer", "default": 100},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Paginated prediction history"},
						"404": map[string]interface{}{"description": "History store disabled"},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Health check",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Service is healthy"},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
