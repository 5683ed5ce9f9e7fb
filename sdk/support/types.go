package support

import "fmt"

// Ticket statuses accepted by UpdateStatus.
const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusClosed     = "CLOSED"
)

// Ticket is a support ticket as returned by the API. Comments are newest first.
type Ticket struct {
	ID          uint     `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Category    string   `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`
	Status      string   `json:"status" yaml:"status"`
	Comments    []string `json:"comments" yaml:"comments"`
}

// NewTicket carries the fields required to open a ticket.
type NewTicket struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Health is the body of the health endpoint.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

type commentBody struct {
	Comment string `json:"comment"`
}
