package types

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateXLSFormName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"simple", "q1", false},
		{"underscore prefix", "_intro", false},
		{"mixed", "household_size_2", false},
		{"starts with digit", "1q", true},
		{"contains space", "q 1", true},
		{"contains dash", "q-1", true},
		{"empty", "", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateXLSFormName(test.value)
			if test.wantErr && err == nil {
				t.Errorf("expected error for %q", test.value)
			}
			if !test.wantErr && err != nil {
				t.Errorf("unexpected error for %q: %s", test.value, err.Error())
			}
		})
	}
}

func TestQuestionValidate(t *testing.T) {
	leafGroupID := primitive.NewObjectID()

	t.Run("select one without choice collection", func(t *testing.T) {
		q := Question{
			Type:        QUESTION_TYPE_SELECT_ONE,
			Name:        "q1",
			LeafGroupID: leafGroupID,
		}
		if err := q.Validate(); !errors.Is(err, ErrChoiceCollectionRequired) {
			t.Errorf("expected ErrChoiceCollectionRequired, got: %v", err)
		}
	})

	t.Run("select one with choice collection", func(t *testing.T) {
		q := Question{
			Type:               QUESTION_TYPE_SELECT_ONE,
			Name:               "q1",
			LeafGroupID:        leafGroupID,
			ChoiceCollectionID: primitive.NewObjectID(),
		}
		if err := q.Validate(); err != nil {
			t.Errorf("unexpected error: %s", err.Error())
		}
	})

	t.Run("integer without choice collection", func(t *testing.T) {
		q := Question{
			Type:        QUESTION_TYPE_INTEGER,
			Name:        "q1",
			LeafGroupID: leafGroupID,
		}
		if err := q.Validate(); err != nil {
			t.Errorf("unexpected error: %s", err.Error())
		}
	})

	t.Run("missing leaf group", func(t *testing.T) {
		q := Question{
			Type: QUESTION_TYPE_TEXT,
			Name: "q1",
		}
		if err := q.Validate(); !errors.Is(err, ErrLeafGroupRequired) {
			t.Errorf("expected ErrLeafGroupRequired, got: %v", err)
		}
	})
}

func TestChoiceCollectionValidate(t *testing.T) {
	t.Run("duplicate choice names", func(t *testing.T) {
		cc := ChoiceCollection{
			Name: "yes_no",
			Choices: []Choice{
				{Name: "yes", Label: "Yes"},
				{Name: "yes", Label: "Also yes"},
			},
		}
		if err := cc.Validate(); err == nil {
			t.Error("expected error for duplicate choice name")
		}
	})

	t.Run("unique choice names", func(t *testing.T) {
		cc := ChoiceCollection{
			Name: "yes_no",
			Choices: []Choice{
				{Name: "yes", Label: "Yes"},
				{Name: "no", Label: "No"},
			},
		}
		if err := cc.Validate(); err != nil {
			t.Errorf("unexpected error: %s", err.Error())
		}
	})
}
