package core

// BronzeProgram is a raw program row carried verbatim from the program
// master spreadsheet. Missing cells are nil; a missing stream id is zero
// and surfaces as an invalid row in the silver layer.
type BronzeProgram struct {
	ProgramStreamID    int64
	DisciplineID       *int64
	DisciplineName     *string
	SchoolID           *int64
	SchoolName         *string
	ProgramStreamName  *string
	ProgramSite        *string
	ProgramStream      *string
	ProgramName        *string
	ProgramURL         *string
	MatchIterationName *string
}

// BronzeDiscipline is a raw discipline row.
type BronzeDiscipline struct {
	DisciplineID int64
	Discipline   *string
}

// BronzeDescription is a raw program description split into named
// section columns. DocumentID is the composite
// "{match_iteration_id}-{program_description_id}" key.
type BronzeDescription struct {
	DocumentID                  string
	Source                      *string
	NProgramDescriptionSections *int64
	ProgramName                 *string
	MatchIterationName          *string

	ProgramContracts                   *string
	GeneralInstructions                *string
	SupportingDocumentationInformation *string
	ReviewProcess                      *string
	Interviews                         *string
	SelectionCriteria                  *string
	ProgramHighlights                  *string
	ProgramCurriculum                  *string
	TrainingSites                      *string
	AdditionalInformation              *string
	ReturnOfService                    *string
	FAQ                                *string
	SummaryOfChanges                   *string

	MatchIterationID     *int64
	ProgramDescriptionID int64
}
