package models

import "time"

// Company defines the company model based on the 'companies' table.
// Info carries free-form recruiter-supplied details (location, salary band).
type Company struct {
	ID        int64             `json:"id" db:"id" example:"1"`
	Name      string            `json:"name" db:"name" example:"Hexaview Labs"`
	Info      map[string]string `json:"info" db:"info"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
}
