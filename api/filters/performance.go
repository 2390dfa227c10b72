package filters

// URI params for the performance endpoints.
type PerformanceURIParams struct {
	ClanId uint   `uri:"clanId" binding:"required"`
	Period string `uri:"period" binding:"required"`
}

// SetCompleteBody toggles the monthly completion lock.
type SetCompleteBody struct {
	Complete *bool `json:"complete" binding:"required"`
}

// PerformanceFilter is the service input for the rollup operations.
type PerformanceFilter struct {
	ClanId  uint
	Period  string
	ActorId string
}
