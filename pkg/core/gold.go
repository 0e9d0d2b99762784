package core

// GoldProgramProfile is the denormalized, API-facing program record.
// DescriptionText is rendered Markdown assembled from the priority
// description sections, or nil when the program has none.
type GoldProgramProfile struct {
	ProgramStreamID   int64
	ProgramName       *string
	ProgramStreamName *string
	ProgramStream     *string
	DisciplineName    *string
	Province          string
	SchoolName        *string
	ProgramSite       *string
	ProgramURL        *string
	DescriptionText   *string
	IsValid           bool
}

// GoldGeoSummary is a per-(province, discipline) rollup. AvgQuota is nil
// when no program in the group carries a quota.
type GoldGeoSummary struct {
	Province       string
	DisciplineName string
	ProgramCount   int64
	AvgQuota       *float64
}
