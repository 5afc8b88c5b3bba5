package domain

import "time"

// Department represents an organizational unit employees belong to.
type Department struct {
	ID        string
	Name      string
	Location  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
