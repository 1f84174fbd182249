package domain

// AppState is the lifecycle of one request track. The generate and enhance
// pipelines each run their own instance.
type AppState string

const (
	StateIdle    AppState = "idle"
	StateLoading AppState = "loading"
	StateSuccess AppState = "success"
	StateError   AppState = "error"
)
