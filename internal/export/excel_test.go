package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

func sampleSubject() *qbank.Subject {
	return &qbank.Subject{
		Name: "CSS",
		Topics: []qbank.Topic{
			{
				ID:   "t-1",
				Name: "Selectors",
				Units: []qbank.Unit{
					{
						Name: "Basic Selectors",
						MCQs: []qbank.MCQ{
							{
								QuestionID:  "q-1",
								QuestionKey: "SEL01",
								IsBase:      true,
								Mode:        qbank.ModePractice,
								CoreConcept: "class-selectors",
								Toughness:   "EASY",
								Skills:      []string{"Identify class selectors"},
								Question:    qbank.QuestionContent{Content: "Which selector targets class box?"},
								Options: []qbank.Option{
									{Content: ".box", IsCorrect: true},
									{Content: "#box"},
								},
								Explanation: qbank.Explanation{Content: "A leading dot targets a class."},
							},
						},
					},
				},
			},
			{ID: "t-2", Name: "Flex/Grid: layout?*", Units: nil},
		},
	}
}

func TestWorkbookSheetsAndRows(t *testing.T) {
	f, err := Workbook(sampleSubject())
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheet count = %d, want 2: %v", len(sheets), sheets)
	}
	if sheets[0] != "Selectors" {
		t.Errorf("first sheet = %q, want Selectors", sheets[0])
	}
	// Forbidden characters are replaced, not dropped.
	if sheets[1] != "Flex_Grid_ layout__" {
		t.Errorf("second sheet = %q, want sanitized name", sheets[1])
	}

	rows, err := f.GetRows("Selectors")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want header + 1 question", len(rows))
	}
	if rows[1][1] != "SEL01" {
		t.Errorf("question key cell = %q, want SEL01", rows[1][1])
	}
	if rows[1][2] != "base" {
		t.Errorf("base cell = %q, want base", rows[1][2])
	}
}

func TestWorkbookRoundTrip(t *testing.T) {
	f, err := Workbook(sampleSubject())
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	reopened, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reopened.Close()

	rows, err := reopened.GetRows("Selectors")
	if err != nil {
		t.Fatalf("GetRows after round trip: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("round-tripped row count = %d, want 2", len(rows))
	}
	if rows[0][0] != "Unit" {
		t.Errorf("header cell = %q, want Unit", rows[0][0])
	}
}

func TestWorkbookEmptySubjectKeepsDefaultSheet(t *testing.T) {
	f, err := Workbook(&qbank.Subject{Name: "Empty"})
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}
	if got := f.GetSheetList(); len(got) != 1 {
		t.Fatalf("sheet list = %v, want the single default sheet", got)
	}
}
