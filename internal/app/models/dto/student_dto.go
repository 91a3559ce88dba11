package dto

// AddressInput represents one address in a student payload
type AddressInput struct {
	Kind    string `json:"kind" binding:"required,oneof=permanent present"`
	Line1   string `json:"line1" binding:"required"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// EducationInput represents one education record in a student payload
type EducationInput struct {
	Level       string   `json:"level" binding:"required,oneof=degree inter ssc"`
	Institution string   `json:"institution" binding:"required"`
	Board       string   `json:"board,omitempty"`
	YearOfPass  string   `json:"yearOfPass,omitempty"`
	Percentage  *float64 `json:"percentage,omitempty"`
}

// CreateStudentRequest represents an admin creating a student record.
// DOB accepts common date layouts; it seeds the default login password.
type CreateStudentRequest struct {
	RegdID    string   `json:"regdId" binding:"required,regdid"`
	FirstName string   `json:"firstName" binding:"required"`
	LastName  string   `json:"lastName,omitempty"`
	Email     string   `json:"email" binding:"required,email"`
	Phone     string   `json:"phone,omitempty"`
	Branch    string   `json:"branch" binding:"required,branchcode"`
	Year      string   `json:"year,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	DOB       string   `json:"dob" binding:"required"`
	CGPA      *float64 `json:"cgpa,omitempty" binding:"omitempty,min=0,max=10"`
	College   string   `json:"college,omitempty"`
	Password  string   `json:"password,omitempty"`
}

// UpdateStudentSelfRequest represents the fields a student may edit on
// their own profile. Identity and academic-standing fields are excluded.
type UpdateStudentSelfRequest struct {
	FirstName      *string          `json:"firstName,omitempty"`
	LastName       *string          `json:"lastName,omitempty"`
	FatherName     *string          `json:"fatherName,omitempty"`
	AltEmail       *string          `json:"altEmail,omitempty" binding:"omitempty,email"`
	Phone          *string          `json:"phone,omitempty"`
	AltPhone       *string          `json:"altPhone,omitempty"`
	Gender         *string          `json:"gender,omitempty"`
	Nationality    *string          `json:"nationality,omitempty"`
	ResumeURL      *string          `json:"resumeUrl,omitempty"`
	AadharNumber   *string          `json:"aadharNumber,omitempty"`
	PANCard        *string          `json:"panCard,omitempty"`
	BreakInStudies *bool            `json:"breakInStudies,omitempty"`
	Addresses      []AddressInput   `json:"addresses,omitempty"`
	Education      []EducationInput `json:"education,omitempty"`
}

// UpdateStudentAdminRequest represents an admin edit of a student record.
// It extends the self-service fields with identity and academic standing.
type UpdateStudentAdminRequest struct {
	UpdateStudentSelfRequest
	RegdID      *string  `json:"regdId,omitempty"`
	Email       *string  `json:"email,omitempty" binding:"omitempty,email"`
	Branch      *string  `json:"branch,omitempty"`
	Year        *string  `json:"year,omitempty"`
	DOB         *string  `json:"dob,omitempty"`
	CGPA        *float64 `json:"cgpa,omitempty" binding:"omitempty,min=0,max=10"`
	College     *string  `json:"college,omitempty"`
	HasBacklogs *bool    `json:"hasBacklogs,omitempty"`
}

// RegisterStudentRequest represents a student registering themselves.
// Registration upserts by registration ID so a pre-loaded record is
// completed rather than duplicated.
type RegisterStudentRequest struct {
	CreateStudentRequest
	Addresses []AddressInput   `json:"addresses,omitempty" binding:"omitempty,dive"`
	Education []EducationInput `json:"education,omitempty" binding:"omitempty,dive"`
}

// StudentListFilter captures query parameters for listing students
type StudentListFilter struct {
	Branch      string  `form:"branch"`
	Year        string  `form:"year"`
	Search      string  `form:"search"`
	MinCGPA     float64 `form:"minCgpa"`
	HasBacklogs *bool   `form:"hasBacklogs"`
	Page        int     `form:"page"`
	Size        int     `form:"size"`
}
