package models

// DeskResponse is the JSON form of a desk. Decision is set only when
// Status is "decided" and Error only when Status is "error".
type DeskResponse struct {
	Query    string `json:"query"`
	Status   string `json:"status"`
	Decision string `json:"decision,omitempty"`
	Error    string `json:"error,omitempty"`
}

// DecideRequest is the body of a JSON decision submission.
type DecideRequest struct {
	Query string `json:"query"`
	Wait  bool   `json:"wait"` // block until the decision resolves
}
