package dto

// Notice is a success message the browser shows and auto-dismisses.
type Notice struct {
	Message        string `json:"message"`
	DismissAfterMS int64  `json:"dismissAfterMs"`
}

// Warning flags a non-fatal secondary failure in a multi-step action.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
