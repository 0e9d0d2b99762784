package pipeline

// silver.go - cleaning and derivation over bronze rows

import (
	"context"

	"github.com/carmsdata/carmsdw/pkg/core"
)

// TransformPrograms derives silver programs from bronze: province from
// site text with the school-table fallback, quota from the match
// iteration label, and a validity flag over the identifying fields.
func (p *Pipeline) TransformPrograms(ctx context.Context) (int, error) {
	programs, err := p.store.BronzePrograms(ctx)
	if err != nil {
		return 0, err
	}

	silver := make([]core.SilverProgram, 0, len(programs))
	for _, row := range programs {
		isValid := row.ProgramStreamID != 0 &&
			row.ProgramName != nil && *row.ProgramName != "" &&
			row.DisciplineID != nil && *row.DisciplineID != 0

		silver = append(silver, core.SilverProgram{
			ProgramStreamID:   row.ProgramStreamID,
			DisciplineID:      row.DisciplineID,
			DisciplineName:    row.DisciplineName,
			SchoolID:          row.SchoolID,
			SchoolName:        row.SchoolName,
			ProgramStreamName: row.ProgramStreamName,
			ProgramSite:       row.ProgramSite,
			ProgramStream:     row.ProgramStream,
			ProgramName:       row.ProgramName,
			ProgramURL:        row.ProgramURL,
			Quota:             ParseQuota(deref(row.MatchIterationName)),
			Province:          ResolveProvince(deref(row.ProgramSite), deref(row.SchoolName)),
			IsValid:           isValid,
		})
	}

	if err := p.store.ReplaceSilverPrograms(ctx, silver); err != nil {
		return 0, err
	}
	p.logger.Info("transformed silver programs", "rows", len(silver))
	return len(silver), nil
}

// TransformDisciplines derives silver disciplines from bronze.
func (p *Pipeline) TransformDisciplines(ctx context.Context) (int, error) {
	disciplines, err := p.store.BronzeDisciplines(ctx)
	if err != nil {
		return 0, err
	}

	silver := make([]core.SilverDiscipline, 0, len(disciplines))
	for _, row := range disciplines {
		silver = append(silver, core.SilverDiscipline{
			DisciplineID: row.DisciplineID,
			Discipline:   row.Discipline,
			IsValid:      !isBlank(row.Discipline),
		})
	}

	if err := p.store.ReplaceSilverDisciplines(ctx, silver); err != nil {
		return 0, err
	}
	p.logger.Info("transformed silver disciplines", "rows", len(silver))
	return len(silver), nil
}

// TransformDescriptionSections explodes bronze descriptions into one
// silver row per non-blank section. Blank sections produce no row.
func (p *Pipeline) TransformDescriptionSections(ctx context.Context) (int, error) {
	descriptions, err := p.store.BronzeDescriptions(ctx)
	if err != nil {
		return 0, err
	}

	var silver []core.SilverDescriptionSection
	for _, desc := range descriptions {
		for _, col := range core.SectionColumns {
			text := col.Get(&desc)
			if isBlank(text) {
				continue
			}
			silver = append(silver, core.SilverDescriptionSection{
				ProgramDescriptionID: desc.ProgramDescriptionID,
				ProgramName:          desc.ProgramName,
				SectionName:          col.Name,
				SectionText:          *text,
				IsValid:              true,
			})
		}
	}

	if err := p.store.ReplaceSilverDescriptionSections(ctx, silver); err != nil {
		return 0, err
	}
	p.logger.Info("transformed silver description sections", "rows", len(silver))
	return len(silver), nil
}
