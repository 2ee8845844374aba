package dto

// ActionResponse is the boundary shape for business mutations: callers get a
// success flag and a human-readable message instead of raw errors. Data is
// operation-specific and omitted when empty.
type ActionResponse struct {
	IsSuccess bool        `json:"isSuccess"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
}

func OK(msg string) ActionResponse  { return ActionResponse{IsSuccess: true, Message: msg} }
func Fail(msg string) ActionResponse { return ActionResponse{IsSuccess: false, Message: msg} }
