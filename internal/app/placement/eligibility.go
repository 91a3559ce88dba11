package placement

import (
	"fmt"
	"slices"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/pkg/apperrors"
)

// Matches reports whether the student satisfies the drive's eligibility
// criteria. An empty criteria matches every student.
func Matches(student *models.Student, criteria models.EligibilityCriteria) bool {
	return CheckEligibility(student, criteria) == nil
}

// CheckEligibility evaluates the criteria and returns a permission error
// describing the first failed rule, or nil when the student qualifies.
func CheckEligibility(student *models.Student, criteria models.EligibilityCriteria) error {
	if len(criteria.Branches) > 0 && !slices.Contains(criteria.Branches, student.Branch) {
		return apperrors.NewForbiddenError(
			fmt.Sprintf("drive is not open to the %s branch", student.Branch))
	}
	if criteria.MinCGPA > 0 {
		if student.CGPA == nil {
			return apperrors.NewForbiddenError("a reported CGPA is required to apply to this drive")
		}
		if *student.CGPA < criteria.MinCGPA {
			return apperrors.NewForbiddenError(
				fmt.Sprintf("CGPA %.2f is below the required minimum of %.2f", *student.CGPA, criteria.MinCGPA))
		}
	}
	if criteria.NoBacklogsRequired && student.HasBacklogs {
		return apperrors.NewForbiddenError("drive requires a clear record with no backlogs")
	}
	if criteria.ProfileCompleteRequired && !student.ProfileCompleted() {
		return apperrors.NewForbiddenError("complete your profile before applying to this drive")
	}
	return nil
}
