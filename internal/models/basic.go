package models

// BasicResponse is a minimal status payload
type BasicResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
