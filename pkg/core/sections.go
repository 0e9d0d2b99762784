package core

// SectionColumn pairs a section name with its accessor on a bronze
// description row. The silver transform iterates this list instead of
// reflecting over struct fields.
type SectionColumn struct {
	Name string
	Get  func(*BronzeDescription) *string
}

// SectionColumns enumerates the thirteen description section columns in
// source order.
var SectionColumns = []SectionColumn{
	{"program_contracts", func(d *BronzeDescription) *string { return d.ProgramContracts }},
	{"general_instructions", func(d *BronzeDescription) *string { return d.GeneralInstructions }},
	{"supporting_documentation_information", func(d *BronzeDescription) *string { return d.SupportingDocumentationInformation }},
	{"review_process", func(d *BronzeDescription) *string { return d.ReviewProcess }},
	{"interviews", func(d *BronzeDescription) *string { return d.Interviews }},
	{"selection_criteria", func(d *BronzeDescription) *string { return d.SelectionCriteria }},
	{"program_highlights", func(d *BronzeDescription) *string { return d.ProgramHighlights }},
	{"program_curriculum", func(d *BronzeDescription) *string { return d.ProgramCurriculum }},
	{"training_sites", func(d *BronzeDescription) *string { return d.TrainingSites }},
	{"additional_information", func(d *BronzeDescription) *string { return d.AdditionalInformation }},
	{"return_of_service", func(d *BronzeDescription) *string { return d.ReturnOfService }},
	{"faq", func(d *BronzeDescription) *string { return d.FAQ }},
	{"summary_of_changes", func(d *BronzeDescription) *string { return d.SummaryOfChanges }},
}

// DescriptionSectionOrder is the subset of sections rendered into gold
// description text, in display order. Sections outside this list never
// reach the gold layer.
var DescriptionSectionOrder = []string{
	"program_highlights",
	"selection_criteria",
	"interviews",
	"program_curriculum",
	"training_sites",
	"additional_information",
}

// ProvinceCodes is the fixed set of Canadian province and territory
// codes recognized by the province resolver.
var ProvinceCodes = map[string]struct{}{
	"NL": {}, "PE": {}, "NS": {}, "NB": {}, "QC": {}, "ON": {}, "MB": {},
	"SK": {}, "AB": {}, "BC": {}, "YT": {}, "NT": {}, "NU": {},
}
