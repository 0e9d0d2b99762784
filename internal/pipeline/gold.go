package pipeline

// gold.go - business-ready aggregation over silver rows

import (
	"context"
	"strings"

	"github.com/carmsdata/carmsdw/pkg/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// renderSectionTitle turns a section key into a heading. The caser is
// passed in because cases.Caser is not safe for concurrent use; each
// aggregation builds its own.
func renderSectionTitle(caser cases.Caser, sectionName string) string {
	return caser.String(strings.ReplaceAll(sectionName, "_", " "))
}

// aggregateDescriptions renders the priority sections of each
// description into a single Markdown-style text, keyed by program
// description id. Sections outside the priority list are skipped;
// included sections always appear in the fixed order.
func aggregateDescriptions(sections []core.SilverDescriptionSection) map[int64]string {
	priority := make(map[string]struct{}, len(core.DescriptionSectionOrder))
	for _, name := range core.DescriptionSectionOrder {
		priority[name] = struct{}{}
	}

	grouped := make(map[int64]map[string]string)
	for _, s := range sections {
		if s.SectionText == "" {
			continue
		}
		if _, ok := priority[s.SectionName]; !ok {
			continue
		}
		m := grouped[s.ProgramDescriptionID]
		if m == nil {
			m = make(map[string]string)
			grouped[s.ProgramDescriptionID] = m
		}
		m[s.SectionName] = s.SectionText
	}

	caser := cases.Title(language.English)
	aggregated := make(map[int64]string, len(grouped))
	for id, sectionMap := range grouped {
		var chunks []string
		for _, name := range core.DescriptionSectionOrder {
			text, ok := sectionMap[name]
			if !ok || text == "" {
				continue
			}
			chunks = append(chunks, "## "+renderSectionTitle(caser, name)+"\n"+text)
		}
		if len(chunks) > 0 {
			aggregated[id] = strings.Join(chunks, "\n\n")
		}
	}
	return aggregated
}

// PublishProgramProfiles joins silver programs with aggregated
// description text into the gold profile table. Description text
// attaches where the program's stream id carries the same number as the
// description id in the source extracts.
func (p *Pipeline) PublishProgramProfiles(ctx context.Context) (int, error) {
	programs, err := p.store.SilverPrograms(ctx)
	if err != nil {
		return 0, err
	}
	sections, err := p.store.SilverDescriptionSections(ctx)
	if err != nil {
		return 0, err
	}

	descriptions := aggregateDescriptions(sections)

	profiles := make([]core.GoldProgramProfile, 0, len(programs))
	for _, program := range programs {
		var descriptionText *string
		if text, ok := descriptions[program.ProgramStreamID]; ok {
			descriptionText = &text
		}

		province := program.Province
		if province == "" {
			province = core.UnknownProvince
		}

		profiles = append(profiles, core.GoldProgramProfile{
			ProgramStreamID:   program.ProgramStreamID,
			ProgramName:       program.ProgramName,
			ProgramStreamName: program.ProgramStreamName,
			ProgramStream:     program.ProgramStream,
			DisciplineName:    program.DisciplineName,
			Province:          province,
			SchoolName:        program.SchoolName,
			ProgramSite:       program.ProgramSite,
			ProgramURL:        program.ProgramURL,
			DescriptionText:   descriptionText,
			IsValid:           program.IsValid,
		})
	}

	if err := p.store.ReplaceGoldProgramProfiles(ctx, profiles); err != nil {
		return 0, err
	}
	p.logger.Info("published gold program profiles", "rows", len(profiles))
	return len(profiles), nil
}

// PublishGeoSummary rolls silver programs up by (province, discipline):
// group size plus the mean of the quotas present in the group.
func (p *Pipeline) PublishGeoSummary(ctx context.Context) (int, error) {
	programs, err := p.store.SilverPrograms(ctx)
	if err != nil {
		return 0, err
	}

	type geoKey struct {
		province   string
		discipline string
	}
	counts := make(map[geoKey]int64)
	quotas := make(map[geoKey][]int64)
	var order []geoKey

	for _, program := range programs {
		province := program.Province
		if province == "" {
			province = core.UnknownProvince
		}
		key := geoKey{province: province, discipline: deref(program.DisciplineName)}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
		if program.Quota != nil {
			quotas[key] = append(quotas[key], *program.Quota)
		}
	}

	rows := make([]core.GoldGeoSummary, 0, len(order))
	for _, key := range order {
		var avg *float64
		if qs := quotas[key]; len(qs) > 0 {
			var sum int64
			for _, q := range qs {
				sum += q
			}
			v := float64(sum) / float64(len(qs))
			avg = &v
		}
		rows = append(rows, core.GoldGeoSummary{
			Province:       key.province,
			DisciplineName: key.discipline,
			ProgramCount:   counts[key],
			AvgQuota:       avg,
		})
	}

	if err := p.store.ReplaceGoldGeoSummaries(ctx, rows); err != nil {
		return 0, err
	}
	p.logger.Info("published gold geo summary", "rows", len(rows))
	return len(rows), nil
}
