package models

type Overview struct {
	TotalEvents       int     `json:"totalEvents"`
	TotalAdmins       int     `json:"totalAdmins"`
	GrowthPercentage  float64 `json:"growthPercentage"`
	DeclinePercentage float64 `json:"declinePercentage"`
}

// Split returns growth and decline as shares of their sum, in percent.
// Both are zero when the sum is not positive.
func (o Overview) Split() (growth, decline float64) {
	total := o.GrowthPercentage + o.DeclinePercentage
	if total <= 0 {
		return 0, 0
	}
	return o.GrowthPercentage / total * 100, o.DeclinePercentage / total * 100
}
