package handler

// successResponse is the envelope every successful API response is wrapped in.
// Count is populated only on list endpoints.
type successResponse struct {
	Success bool `json:"success"`
	Count   *int `json:"count,omitempty"`
	Data    any  `json:"data"`
}

func respond(data any) successResponse {
	return successResponse{Success: true, Data: data}
}

func respondList(data any, count int) successResponse {
	return successResponse{Success: true, Count: &count, Data: data}
}
