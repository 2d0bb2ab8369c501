package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type viewResponse struct {
	View          string            `json:"view"`
	Authenticated bool              `json:"authenticated"`
	IsAdmin       bool              `json:"isAdmin"`
	User          any               `json:"user,omitempty"`
	Params        map[string]string `json:"params,omitempty"`
}
