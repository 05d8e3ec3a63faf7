package xlsform

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/the-deep/qber-backend/pkg/qbank/taxonomy"
	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

func TestPreSeedLeafGroups(t *testing.T) {
	bankID := primitive.NewObjectID()
	leafGroups := PreSeedLeafGroups(bankID)

	expected := taxonomy.Matrix1DTupleCount() + taxonomy.Matrix2DTupleCount()
	if len(leafGroups) != expected {
		t.Errorf("unexpected group count. Got: %d, Expected: %d", len(leafGroups), expected)
	}

	t.Run("deterministic across runs", func(t *testing.T) {
		again := PreSeedLeafGroups(bankID)
		if len(again) != len(leafGroups) {
			t.Fatalf("unexpected group count on second run: %d", len(again))
		}
		for i := range leafGroups {
			if leafGroups[i].Tuple() != again[i].Tuple() {
				t.Fatalf("tuple order differs at %d", i)
			}
			if leafGroups[i].Name != again[i].Name {
				t.Fatalf("name differs at %d", i)
			}
		}
	})

	t.Run("all tuples unique and valid", func(t *testing.T) {
		seen := map[taxonomy.CategoryTuple]struct{}{}
		for _, lg := range leafGroups {
			if err := taxonomy.Validate(lg.Type, lg.Tuple()); err != nil {
				t.Errorf("invalid pre-seeded tuple %s: %s", lg.Tuple(), err.Error())
			}
			if err := taxonomy.ValidateUnique(lg.Tuple(), seen); err != nil {
				t.Errorf("duplicate pre-seeded tuple: %s", lg.Tuple())
			}
			seen[lg.Tuple()] = struct{}{}
		}
	})
}

func questionRecord(debugIndex int, fields map[string]string) Record {
	record := Record{
		Type:       "integer",
		Name:       "q1",
		Label:      map[string]string{"default": "How many?"},
		Fields:     map[string]string{},
		DebugIndex: debugIndex,
	}
	for key, value := range fields {
		record.Fields[key] = value
	}
	return record
}

func TestImporterMatrix1DMatching(t *testing.T) {
	bankID := primitive.NewObjectID()
	leafGroups := PreSeedLeafGroups(bankID)
	imp := NewImporter(bankID, leafGroups)

	root := Record{Type: "survey", Children: []Record{
		questionRecord(2, map[string]string{
			COLUMN_PILLAR:     "Context",
			COLUMN_SUB_PILLAR: "Politics",
		}),
	}}

	result := imp.Process(root)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Questions) != 1 {
		t.Fatalf("expected one question, got %d", len(result.Questions))
	}

	question := result.Questions[0]
	var matched qbankTypes.LeafGroup
	for _, lg := range leafGroups {
		if lg.ID == question.LeafGroupID {
			matched = lg
			break
		}
	}
	if matched.Category1 != taxonomy.Category1Context || matched.Category2 != taxonomy.Category2Politics {
		t.Errorf("question matched wrong leaf group: %s", matched.Tuple())
	}
}

func TestImporterSoftErrors(t *testing.T) {
	bankID := primitive.NewObjectID()
	leafGroups := PreSeedLeafGroups(bankID)

	t.Run("unresolvable category", func(t *testing.T) {
		imp := NewImporter(bankID, leafGroups)
		root := Record{Type: "survey", Children: []Record{
			questionRecord(5, map[string]string{
				COLUMN_PILLAR:     "Context",
				COLUMN_SUB_PILLAR: "Not A Real Category",
			}),
		}}

		result := imp.Process(root)
		if len(result.Questions) != 0 {
			t.Errorf("expected no questions, got %d", len(result.Questions))
		}
		if len(result.Errors) != 1 {
			t.Fatalf("expected one error, got %d: %v", len(result.Errors), result.Errors)
		}
		if !strings.Contains(result.Errors[0], "qber-debug-index: 5") {
			t.Errorf("error does not reference the row's debug index: %s", result.Errors[0])
		}
	})

	t.Run("missing sub pillar", func(t *testing.T) {
		imp := NewImporter(bankID, leafGroups)
		root := Record{Type: "survey", Children: []Record{
			questionRecord(3, map[string]string{COLUMN_PILLAR: "Context"}),
		}}

		result := imp.Process(root)
		if len(result.Questions) != 0 || len(result.Errors) != 1 {
			t.Errorf("expected skip with one error, got %d questions, %v", len(result.Questions), result.Errors)
		}
	})

	t.Run("partial sector pair", func(t *testing.T) {
		imp := NewImporter(bankID, leafGroups)
		root := Record{Type: "survey", Children: []Record{
			questionRecord(4, map[string]string{
				COLUMN_PILLAR:     "Impact",
				COLUMN_SUB_PILLAR: "Drivers",
				COLUMN_SECTOR:     "Health",
			}),
		}}

		result := imp.Process(root)
		if len(result.Questions) != 0 || len(result.Errors) != 1 {
			t.Errorf("expected skip with one error, got %d questions, %v", len(result.Questions), result.Errors)
		}
	})

	t.Run("illegal category combination", func(t *testing.T) {
		imp := NewImporter(bankID, leafGroups)
		// Politics is a Matrix 1D sub pillar, not legal under Impact
		root := Record{Type: "survey", Children: []Record{
			questionRecord(6, map[string]string{
				COLUMN_PILLAR:     "Impact",
				COLUMN_SUB_PILLAR: "Politics",
				COLUMN_SECTOR:     "Health",
				COLUMN_SUB_SECTOR: "Health care",
			}),
		}}

		result := imp.Process(root)
		if len(result.Questions) != 0 || len(result.Errors) != 1 {
			t.Errorf("expected skip with one error, got %d questions, %v", len(result.Questions), result.Errors)
		}
		if !strings.Contains(result.Errors[0], "Invalid categories") {
			t.Errorf("unexpected error message: %s", result.Errors[0])
		}
	})

	t.Run("unknown question type", func(t *testing.T) {
		imp := NewImporter(bankID, leafGroups)
		record := questionRecord(7, map[string]string{
			COLUMN_PILLAR:     "Context",
			COLUMN_SUB_PILLAR: "Politics",
		})
		record.Type = "geopoint"
		root := Record{Type: "survey", Children: []Record{record}}

		result := imp.Process(root)
		if len(result.Questions) != 0 || len(result.Errors) != 1 {
			t.Errorf("expected skip with one error, got %d questions, %v", len(result.Questions), result.Errors)
		}
	})

	t.Run("soft errors do not abort siblings", func(t *testing.T) {
		imp := NewImporter(bankID, leafGroups)
		bad := questionRecord(2, map[string]string{
			COLUMN_PILLAR:     "Context",
			COLUMN_SUB_PILLAR: "Not A Real Category",
		})
		good := questionRecord(3, map[string]string{
			COLUMN_PILLAR:     "Context",
			COLUMN_SUB_PILLAR: "Economics",
		})
		good.Name = "q2"
		root := Record{Type: "survey", Children: []Record{bad, good}}

		result := imp.Process(root)
		if len(result.Questions) != 1 {
			t.Errorf("expected the good row to survive, got %d questions", len(result.Questions))
		}
		if len(result.Errors) != 1 {
			t.Errorf("expected one error, got %v", result.Errors)
		}
	})
}

func TestImporterChoiceCollections(t *testing.T) {
	bankID := primitive.NewObjectID()
	leafGroups := PreSeedLeafGroups(bankID)
	imp := NewImporter(bankID, leafGroups)

	selectRecord := func(debugIndex int, name string) Record {
		return Record{
			Type:  "select one",
			Name:  name,
			Label: map[string]string{"default": "Pick one"},
			Fields: map[string]string{
				COLUMN_PILLAR:     "Context",
				COLUMN_SUB_PILLAR: "Politics",
			},
			ListName: "yes_no",
			Choices: []ChoiceRecord{
				{Name: "yes", Label: map[string]string{"default": "Yes"}},
				{Name: "no", Label: map[string]string{"default": "No"}},
			},
			DebugIndex: debugIndex,
		}
	}

	root := Record{Type: "survey", Children: []Record{
		selectRecord(2, "q1"),
		selectRecord(3, "q2"),
	}}

	result := imp.Process(root)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.ChoiceCollections) != 1 {
		t.Fatalf("expected the list to be created once, got %d collections", len(result.ChoiceCollections))
	}
	collection := result.ChoiceCollections[0]
	if collection.Name != "yes_no" || len(collection.Choices) != 2 {
		t.Errorf("unexpected collection: %+v", collection)
	}
	if len(result.Questions) != 2 {
		t.Fatalf("expected two questions, got %d", len(result.Questions))
	}
	for _, question := range result.Questions {
		if question.ChoiceCollectionID != collection.ID {
			t.Errorf("question %s not linked to the shared collection", question.Name)
		}
	}
}

func TestImporterMetadataFields(t *testing.T) {
	bankID := primitive.NewObjectID()
	imp := NewImporter(bankID, PreSeedLeafGroups(bankID))

	record := questionRecord(2, map[string]string{
		COLUMN_PILLAR:                 "Context",
		COLUMN_SUB_PILLAR:             "Politics",
		COLUMN_PRIORITY_LEVEL:         "High priority",
		COLUMN_ENUMERATOR_SKILL:       "MEDIUM",
		COLUMN_DATA_COLLECTION_METHOD: "Direct observation",
		COLUMN_REQUIRED_DURATION:      "1.5",
		"required":                    "yes",
	})
	root := Record{Type: "survey", Children: []Record{record}}

	result := imp.Process(root)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Questions) != 1 {
		t.Fatalf("expected one question, got %d", len(result.Questions))
	}

	question := result.Questions[0]
	if question.PriorityLevel != qbankTypes.PRIORITY_LEVEL_HIGH {
		t.Errorf("unexpected priority level: %d", question.PriorityLevel)
	}
	if question.EnumeratorSkill != qbankTypes.ENUMERATOR_SKILL_INTERMEDIATE {
		t.Errorf("unexpected enumerator skill: %d", question.EnumeratorSkill)
	}
	if question.DataCollectionMethod != qbankTypes.DATA_COLLECTION_METHOD_DIRECT {
		t.Errorf("unexpected data collection method: %d", question.DataCollectionMethod)
	}
	if question.RequiredDuration != 90 {
		t.Errorf("unexpected required duration: %d", question.RequiredDuration)
	}
	if !question.Required {
		t.Error("expected required to be true")
	}
}

func TestSplitTypeCell(t *testing.T) {
	tests := []struct {
		raw       string
		basicType string
		listName  string
	}{
		{"integer", "integer", ""},
		{"select_one yes_no", "select one", "yes_no"},
		{"select one yes_no", "select one", "yes_no"},
		{"select_multiple services", "select multiple", "services"},
		{"select all that apply services", "select all that apply", "services"},
		{"rank priorities", "rank", "priorities"},
		{"begin_group", "begin group", ""},
		{"end group", "end group", ""},
		{"Text", "text", ""},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			basicType, listName := splitTypeCell(test.raw)
			if basicType != test.basicType || listName != test.listName {
				t.Errorf("unexpected result. Got: (%s, %s), Expected: (%s, %s)", basicType, listName, test.basicType, test.listName)
			}
		})
	}
}
