package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/pkg/apperrors"
)

func eligibleStudent() *models.Student {
	cgpa := 8.4
	return &models.Student{
		ID:        42,
		FirstName: "Ananya",
		Email:     "ananya@college.edu",
		Phone:     "9876500000",
		Branch:    "CSE",
		CGPA:      &cgpa,
		ResumeURL: "https://files.college.edu/resumes/42.pdf",
	}
}

func TestCheckEligibility(t *testing.T) {
	lowCGPA := 6.9

	tests := []struct {
		name     string
		mutate   func(*models.Student)
		criteria models.EligibilityCriteria
		wantErr  bool
	}{
		{
			name:     "empty criteria matches everyone",
			criteria: models.EligibilityCriteria{},
		},
		{
			name: "branch and cgpa both satisfied",
			criteria: models.EligibilityCriteria{
				MinCGPA:  7.0,
				Branches: []string{"CSE", "IT"},
			},
		},
		{
			name:     "branch mismatch",
			criteria: models.EligibilityCriteria{Branches: []string{"ECE", "EEE"}},
			wantErr:  true,
		},
		{
			name:     "cgpa below minimum",
			mutate:   func(s *models.Student) { s.CGPA = &lowCGPA },
			criteria: models.EligibilityCriteria{MinCGPA: 7.0},
			wantErr:  true,
		},
		{
			name:     "missing cgpa fails a positive minimum",
			mutate:   func(s *models.Student) { s.CGPA = nil },
			criteria: models.EligibilityCriteria{MinCGPA: 6.0},
			wantErr:  true,
		},
		{
			name:     "missing cgpa passes when no minimum is set",
			mutate:   func(s *models.Student) { s.CGPA = nil },
			criteria: models.EligibilityCriteria{Branches: []string{"CSE"}},
		},
		{
			name:     "backlogs blocked when required clear",
			mutate:   func(s *models.Student) { s.HasBacklogs = true },
			criteria: models.EligibilityCriteria{NoBacklogsRequired: true},
			wantErr:  true,
		},
		{
			name:     "incomplete profile blocked when required",
			mutate:   func(s *models.Student) { s.ResumeURL = "" },
			criteria: models.EligibilityCriteria{ProfileCompleteRequired: true},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			student := eligibleStudent()
			if tt.mutate != nil {
				tt.mutate(student)
			}
			err := CheckEligibility(student, tt.criteria)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
				assert.False(t, Matches(student, tt.criteria))
			} else {
				assert.NoError(t, err)
				assert.True(t, Matches(student, tt.criteria))
			}
		})
	}
}
