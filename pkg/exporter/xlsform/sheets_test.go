package xlsform

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/the-deep/qber-backend/pkg/qbank/taxonomy"
	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

func testQuestionnaireData() QuestionnaireData {
	lg := matrix1DGroup(taxonomy.Category1Context, taxonomy.Category2Politics)
	collectionID := primitive.NewObjectID()
	unusedCollectionID := primitive.NewObjectID()

	return QuestionnaireData{
		Questionnaire: qbankTypes.Questionnaire{
			ID:    primitive.NewObjectID(),
			Title: "Household assessment",
		},
		LeafGroups: []qbankTypes.LeafGroup{lg},
		QuestionsByLeafGroup: map[string][]qbankTypes.Question{
			lg.ID.Hex(): {
				{
					ID:          primitive.NewObjectID(),
					LeafGroupID: lg.ID,
					Type:        qbankTypes.QUESTION_TYPE_INTEGER,
					Name:        "hh_size",
					Label:       "Household size",
					Required:    true,
				},
				{
					ID:                 primitive.NewObjectID(),
					LeafGroupID:        lg.ID,
					Type:               qbankTypes.QUESTION_TYPE_SELECT_ONE,
					Name:               "water_source",
					Label:              "Main water source",
					ChoiceCollectionID: collectionID,
					IsOrOther:          true,
				},
			},
		},
		ChoiceCollections: map[string]qbankTypes.ChoiceCollection{
			collectionID.Hex(): {
				ID:   collectionID,
				Name: "water_sources",
				Choices: []qbankTypes.Choice{
					{Name: "piped", Label: "Piped water"},
					{Name: "well", Label: "Well"},
				},
			},
			unusedCollectionID.Hex(): {
				ID:   unusedCollectionID,
				Name: "unused_list",
				Choices: []qbankTypes.Choice{
					{Name: "a", Label: "A"},
				},
			},
		},
	}
}

func TestGenerateDataSurveySheet(t *testing.T) {
	data := testQuestionnaireData()

	survey, choices, settings, err := GenerateData(data)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	t.Run("row shape begin questions end", func(t *testing.T) {
		if len(survey.Rows) != 4 {
			t.Fatalf("expected 4 survey rows (begin, 2 questions, end), got %d", len(survey.Rows))
		}
		if survey.Rows[0]["type"] != TYPE_BEGIN_GROUP {
			t.Errorf("expected begin group row first, got: %v", survey.Rows[0])
		}
		if survey.Rows[0]["label"] != "Politics" {
			t.Errorf("unexpected group label: %s", survey.Rows[0]["label"])
		}
		if survey.Rows[1]["name"] != "hh_size" || survey.Rows[1]["type"] != "integer" {
			t.Errorf("unexpected first question row: %v", survey.Rows[1])
		}
		if survey.Rows[1]["required"] != "true" {
			t.Errorf("unexpected required rendering: %q", survey.Rows[1]["required"])
		}
		if survey.Rows[3]["type"] != TYPE_END_GROUP {
			t.Errorf("expected end group row last, got: %v", survey.Rows[3])
		}
	})

	t.Run("select one with or_other suffix", func(t *testing.T) {
		if survey.Rows[2]["type"] != "select_one water_sources or_other" {
			t.Errorf("unexpected select type string: %q", survey.Rows[2]["type"])
		}
	})

	t.Run("only referenced choice collections emitted", func(t *testing.T) {
		if len(choices.Rows) != 2 {
			t.Fatalf("expected 2 choice rows, got %d", len(choices.Rows))
		}
		for _, row := range choices.Rows {
			if row["list name"] != "water_sources" {
				t.Errorf("unexpected list name: %s", row["list name"])
			}
		}
	})

	t.Run("settings single row", func(t *testing.T) {
		if len(settings.Rows) != 1 {
			t.Fatalf("expected 1 settings row, got %d", len(settings.Rows))
		}
		if settings.Rows[0]["form_title"] != "Household assessment" {
			t.Errorf("unexpected form title: %s", settings.Rows[0]["form_title"])
		}
		if settings.Rows[0]["form_id"] != data.Questionnaire.ID.Hex() {
			t.Errorf("unexpected form id: %s", settings.Rows[0]["form_id"])
		}
	})
}

func TestGenerateDataHidden(t *testing.T) {
	t.Run("hidden leaf group emits no rows", func(t *testing.T) {
		data := testQuestionnaireData()
		data.LeafGroups[0].IsHidden = true

		survey, choices, _, err := GenerateData(data)
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if len(survey.Rows) != 0 {
			t.Errorf("expected no survey rows for hidden group, got %d", len(survey.Rows))
		}
		if len(choices.Rows) != 0 {
			t.Errorf("expected no choice rows for hidden group, got %d", len(choices.Rows))
		}
	})

	t.Run("hidden question excluded", func(t *testing.T) {
		data := testQuestionnaireData()
		groupID := data.LeafGroups[0].ID.Hex()
		questions := data.QuestionsByLeafGroup[groupID]
		questions[1].IsHidden = true
		data.QuestionsByLeafGroup[groupID] = questions

		survey, choices, _, err := GenerateData(data)
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if len(survey.Rows) != 3 {
			t.Errorf("expected 3 survey rows, got %d", len(survey.Rows))
		}
		// the hidden question was the only reference to the collection
		if len(choices.Rows) != 0 {
			t.Errorf("expected no choice rows, got %d", len(choices.Rows))
		}
	})
}

func TestGenerateDataCategoryGroups(t *testing.T) {
	lgA := matrix2DGroup(taxonomy.Category1Impact, taxonomy.Category2Drivers, taxonomy.Category3Health, taxonomy.Category4HealthCare)
	lgB := matrix2DGroup(taxonomy.Category1Impact, taxonomy.Category2Drivers, taxonomy.Category3Health, taxonomy.Category4HealthStatus)

	data := QuestionnaireData{
		Questionnaire:        qbankTypes.Questionnaire{ID: primitive.NewObjectID(), Title: "t"},
		LeafGroups:           []qbankTypes.LeafGroup{lgA, lgB},
		QuestionsByLeafGroup: map[string][]qbankTypes.Question{},
		ChoiceCollections:    map[string]qbankTypes.ChoiceCollection{},
	}

	survey, _, _, err := GenerateData(data)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	// category__<impact> > category__...__<drivers> > category__...__<health>
	// > two leaf group blocks, each begin+end, then three end rows
	expectedNames := []string{
		"category__201",
		"category__201__category__20001",
		"category__201__category__20001__category__1001",
	}
	for i, name := range expectedNames {
		if survey.Rows[i]["type"] != TYPE_BEGIN_GROUP || survey.Rows[i]["name"] != name {
			t.Errorf("unexpected category group row %d: %v", i, survey.Rows[i])
		}
	}

	endRows := 0
	for _, row := range survey.Rows {
		if row["type"] == TYPE_END_GROUP {
			endRows++
		}
	}
	// 3 synthetic groups + 2 leaf groups
	if endRows != 5 {
		t.Errorf("expected 5 end group rows, got %d", endRows)
	}
}

func TestGenerateDataUnknownLeafGroupType(t *testing.T) {
	lg := matrix1DGroup(taxonomy.Category1Context, taxonomy.Category2Politics)
	lg.Type = taxonomy.LeafGroupType(99)

	data := QuestionnaireData{
		Questionnaire:        qbankTypes.Questionnaire{ID: primitive.NewObjectID(), Title: "t"},
		LeafGroups:           []qbankTypes.LeafGroup{lg},
		QuestionsByLeafGroup: map[string][]qbankTypes.Question{},
		ChoiceCollections:    map[string]qbankTypes.ChoiceCollection{},
	}

	if _, _, _, err := GenerateData(data); err == nil {
		t.Error("expected fatal error for unknown leaf group type")
	}
}
