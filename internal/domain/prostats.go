package domain

// ProStats derived statistics for a pro profile
type ProStats struct {
	ProProfileID        string
	CompletedJobsCount  int
	IsTopPro            bool
	ResponseTimeMinutes *int
}

// CalculateIsTopPro returns true when the pro crossed the completed-jobs
// threshold. Flat threshold without decay or recency weighting, the rule
// is a placeholder and not worth over-investing in.
func CalculateIsTopPro(completedJobsCount int) bool {
	return completedJobsCount >= TopProCompletedJobsThreshold
}

// CalculateResponseTimeMinutes placeholder: requires an acceptedAt
// timestamp on bookings which the schema does not carry yet.
// TODO: compute average creation-to-acceptance time once acceptedAt is stored
func CalculateResponseTimeMinutes() *int {
	return nil
}
