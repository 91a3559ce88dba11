package models

import "time"

// Admin defines the admin model based on the 'admins' table.
// Branch is empty for main admins and set for branch admins.
type Admin struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Email        string    `json:"email" db:"email" example:"placements@college.edu"`
	Name         string    `json:"name" db:"name" example:"Placement Cell"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role" example:"branch-admin"`
	Branch       string    `json:"branch,omitempty" db:"branch" example:"CSE"`
	Status       string    `json:"status" db:"status" example:"active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
