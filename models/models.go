package models

type HealthResponse struct {
	Status string `json:"status"`
}

type ChefResponse struct {
	Username string `json:"username"`
	TokenID  string `json:"token_id,omitempty"`
}
