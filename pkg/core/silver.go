package core

// UnknownProvince is the sentinel used when no province can be derived.
const UnknownProvince = "UNKNOWN"

// SilverProgram is a cleaned program row. Province is never empty: it is
// one of the thirteen province codes or UnknownProvince.
type SilverProgram struct {
	ProgramStreamID   int64
	DisciplineID      *int64
	DisciplineName    *string
	SchoolID          *int64
	SchoolName        *string
	ProgramStreamName *string
	ProgramSite       *string
	ProgramStream     *string
	ProgramName       *string
	ProgramURL        *string
	Quota             *int64
	Province          string
	IsValid           bool
}

// SilverDiscipline is a cleaned discipline row. IsValid is true when the
// discipline label is non-blank.
type SilverDiscipline struct {
	DisciplineID int64
	Discipline   *string
	Province     *string
	IsValid      bool
}

// SilverDescriptionSection is one non-blank section of a program
// description. Blank sections are dropped upstream, so rows that exist
// are always valid.
type SilverDescriptionSection struct {
	ProgramDescriptionID int64
	ProgramName          *string
	SectionName          string
	SectionText          string
	IsValid              bool
}
