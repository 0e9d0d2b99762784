package pipeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/carmsdata/carmsdw/pkg/core"
)

func TestRenderSectionTitle(t *testing.T) {
	caser := cases.Title(language.English)
	assert.Equal(t, "Program Highlights", renderSectionTitle(caser, "program_highlights"))
	assert.Equal(t, "Selection Criteria", renderSectionTitle(caser, "selection_criteria"))
	assert.Equal(t, "Interviews", renderSectionTitle(caser, "interviews"))
}

func TestAggregateDescriptions(t *testing.T) {
	sections := []core.SilverDescriptionSection{
		// Stored out of priority order on purpose.
		{ProgramDescriptionID: 100, SectionName: "interviews", SectionText: "Interviews are held in February."},
		{ProgramDescriptionID: 100, SectionName: "program_highlights", SectionText: "Strong community focus."},
		// Outside the priority list, must not appear.
		{ProgramDescriptionID: 100, SectionName: "faq", SectionText: "Q and A."},
		{ProgramDescriptionID: 200, SectionName: "training_sites", SectionText: "Main campus only."},
		// Only a non-priority section, so no aggregate at all.
		{ProgramDescriptionID: 300, SectionName: "summary_of_changes", SectionText: "Updated deadlines."},
	}

	got := aggregateDescriptions(sections)

	assert.Equal(t,
		"## Program Highlights\nStrong community focus.\n\n"+
			"## Interviews\nInterviews are held in February.",
		got[100])
	assert.Equal(t, "## Training Sites\nMain campus only.", got[200])
	assert.NotContains(t, got, int64(300))
	assert.Len(t, got, 2)
}

func TestAggregateDescriptionsEmpty(t *testing.T) {
	assert.Empty(t, aggregateDescriptions(nil))
}

func TestAggregateDescriptionsConcurrent(t *testing.T) {
	sections := []core.SilverDescriptionSection{
		{ProgramDescriptionID: 100, SectionName: "program_highlights", SectionText: "Strong community focus."},
		{ProgramDescriptionID: 100, SectionName: "selection_criteria", SectionText: "CaRMS application required."},
	}
	want := "## Program Highlights\nStrong community focus.\n\n" +
		"## Selection Criteria\nCaRMS application required."

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := aggregateDescriptions(sections)
			assert.Equal(t, want, got[100])
		}()
	}
	wg.Wait()
}
