package messages

const (
	BattleAlreadyRecorded = "a battle for this clan and battle id was already recorded"
	BattleNotFound        = "couldn't find the requested battle"
	BattleNotScheduled    = "the battle id doesn't exist on the battle schedule"
	FiltersNotNil         = "filters can't be nil"
	NoBattlesInPeriod     = "no battles recorded for the requested period"
	RollupNotMaterialized = "the rollup doesn't exist yet, view the period first to create it"
	MemberNotFound        = "couldn't find the requested roster member"
	MemberAlreadyExists   = "the roster member already exists"
	MemberBrokenLifecycle = "roster member has more than one lifecycle state set"
)
