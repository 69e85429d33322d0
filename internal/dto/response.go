package dto

// ListResponse wraps a collection.
type ListResponse[T any] struct {
	Items []T `json:"items"`
}

// EntityResponse wraps a single record.
type EntityResponse[T any] struct {
	Item T `json:"item"`
}

// ActionResponse reports the outcome of a write.
type ActionResponse struct {
	Message string `json:"message"`
	Result  any    `json:"result"`
}

// WriteResult is the persistence outcome carried by an ActionResponse.
type WriteResult struct {
	ID       string `json:"id"`
	Affected int64  `json:"affected"`
}

// List never returns a nil slice so the JSON is always an array.
func List[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items}
}

func Entity[T any](item T) EntityResponse[T] {
	return EntityResponse[T]{Item: item}
}

func Action(message string, result any) ActionResponse {
	return ActionResponse{Message: message, Result: result}
}
