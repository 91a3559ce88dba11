package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID             int64      `json:"id" db:"id" example:"1"`
	RegdID         string     `json:"regdId" db:"regd_id" example:"21BD1A0501"` // Unique registration identifier
	FirstName      string     `json:"firstName" db:"first_name" example:"Ananya"`
	LastName       string     `json:"lastName,omitempty" db:"last_name"`
	FatherName     string     `json:"fatherName,omitempty" db:"father_name"`
	Email          string     `json:"email" db:"email" example:"ananya@college.edu"`
	AltEmail       string     `json:"altEmail,omitempty" db:"alt_email"`
	Phone          string     `json:"phone" db:"phone"`
	AltPhone       string     `json:"altPhone,omitempty" db:"alt_phone"`
	Branch         string     `json:"branch" db:"branch" example:"CSE"`
	CGPA           *float64   `json:"cgpa,omitempty" db:"cgpa" example:"8.4"` // nil until the student reports one
	Year           string     `json:"year,omitempty" db:"year" example:"2026"`
	Gender         string     `json:"gender,omitempty" db:"gender"`
	DOB            *time.Time `json:"dob,omitempty" db:"dob"`
	Nationality    string     `json:"nationality,omitempty" db:"nationality"`
	College        string     `json:"college,omitempty" db:"college"`
	ResumeURL      string     `json:"resumeUrl,omitempty" db:"resume_url"`
	AadharNumber   string     `json:"aadharNumber,omitempty" db:"aadhar_number"`
	PANCard        string     `json:"panCard,omitempty" db:"pan_card"`
	PasswordHash   string     `json:"-" db:"password_hash"`
	BreakInStudies bool       `json:"breakInStudies" db:"break_in_studies"`
	HasBacklogs    bool       `json:"hasBacklogs" db:"has_backlogs"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Addresses []Address         `json:"addresses,omitempty"`
	Education []EducationRecord `json:"education,omitempty"`
}

// FullName joins first and last name, trimming when the last name is absent.
func (s *Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// ProfileCompleted reports whether the mandatory profile fields are filled in.
// Drives may require a complete profile before accepting an application.
func (s *Student) ProfileCompleted() bool {
	return s.FirstName != "" &&
		s.Email != "" &&
		s.Phone != "" &&
		s.Branch != "" &&
		s.CGPA != nil &&
		s.ResumeURL != ""
}

// Address is one of a student's stored addresses ('student_addresses' table).
// Kind is "permanent" or "present"; one row per kind per student.
type Address struct {
	ID        int64  `json:"id" db:"id"`
	StudentID int64  `json:"studentId" db:"student_id"`
	Kind      string `json:"kind" db:"kind" example:"permanent"`
	Line1     string `json:"line1" db:"line1"`
	Line2     string `json:"line2,omitempty" db:"line2"`
	City      string `json:"city" db:"city"`
	State     string `json:"state" db:"state"`
	Pincode   string `json:"pincode" db:"pincode"`
}

// EducationRecord is one prior qualification ('student_education' table).
// Level is "degree", "inter" or "ssc"; one row per level per student.
type EducationRecord struct {
	ID          int64    `json:"id" db:"id"`
	StudentID   int64    `json:"studentId" db:"student_id"`
	Level       string   `json:"level" db:"level" example:"degree"`
	Institution string   `json:"institution" db:"institution"`
	Board       string   `json:"board,omitempty" db:"board"`
	YearOfPass  string   `json:"yearOfPass,omitempty" db:"year_of_pass"`
	Percentage  *float64 `json:"percentage,omitempty" db:"percentage"`
}
