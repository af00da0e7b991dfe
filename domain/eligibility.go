package domain

// Closed enumerations for the eligibility questionnaire. Free text is only
// allowed for the referee name.
const (
	EducationPrimary   = "primary"
	EducationSecondary = "secondary"
	EducationTertiary  = "tertiary"
	EducationNone      = "none"

	EmploymentEmployed     = "employed"
	EmploymentSelfEmployed = "self-employed"
	EmploymentUnemployed   = "unemployed"
	EmploymentStudent      = "student"

	IncomeUpTo5K   = "0-5k"
	Income5KTo15K  = "5k-15k"
	Income15KTo30K = "15k-30k"
	IncomeOver30K  = "30k+"

	PurposeBusiness   = "business"
	PurposePersonal   = "personal"
	PurposeSchoolFees = "school-fees"
	PurposeOther      = "other"
)

// EligibilityData is the submitted questionnaire, persisted as-is.
type EligibilityData struct {
	Education    string `json:"education"`
	Employment   string `json:"employment"`
	Income       string `json:"income"`
	Purpose      string `json:"purpose"`
	RefereeName  string `json:"refereeName"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}
