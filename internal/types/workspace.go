package types

import "time"

// Workspace is a registered notes directory. IDs are small integers
// handed out by the registry and stable for the life of the database.
type Workspace struct {
	ID        int       `json:"id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}
