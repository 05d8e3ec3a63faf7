package xlsform

import (
	"fmt"
	"strings"

	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

// Row is one sheet row: column name to rendered scalar value. Absent
// columns render as empty cells.
type Row map[string]string

type Sheet struct {
	Name    string
	Headers []string
	Rows    []Row
}

// QuestionnaireData is the already materialized input of one export run.
type QuestionnaireData struct {
	Questionnaire qbankTypes.Questionnaire
	// Ordered by their order field
	LeafGroups []qbankTypes.LeafGroup
	// Keyed by leaf group id hex, each list ordered by question order
	QuestionsByLeafGroup map[string][]qbankTypes.Question
	// Keyed by choice collection id hex
	ChoiceCollections map[string]qbankTypes.ChoiceCollection
}

// xlsformTypeName resolves a question type to its XLSForm type string.
// Select and rank types carry the referenced collection name, with the
// or_other suffix when the question allows a free text other answer.
func xlsformTypeName(question qbankTypes.Question, collections map[string]qbankTypes.ChoiceCollection) (string, error) {
	withCollection := func(prefix string, orOther bool) (string, error) {
		collection, ok := collections[question.ChoiceCollectionID.Hex()]
		if !ok {
			return "", fmt.Errorf("question %s references unknown choice collection %s", question.Name, question.ChoiceCollectionID.Hex())
		}
		name := prefix + " " + collection.Name
		if orOther {
			name += OR_OTHER_SUFFIX
		}
		return name, nil
	}

	switch question.Type {
	case qbankTypes.QUESTION_TYPE_INTEGER:
		return "integer", nil
	case qbankTypes.QUESTION_TYPE_DECIMAL:
		return "decimal", nil
	case qbankTypes.QUESTION_TYPE_TEXT:
		return "text", nil
	case qbankTypes.QUESTION_TYPE_SELECT_ONE:
		return withCollection("select_one", question.IsOrOther)
	case qbankTypes.QUESTION_TYPE_SELECT_MULTIPLE:
		return withCollection("select_multiple", question.IsOrOther)
	case qbankTypes.QUESTION_TYPE_RANK:
		return withCollection("rank", false)
	case qbankTypes.QUESTION_TYPE_RANGE:
		return "range", nil
	case qbankTypes.QUESTION_TYPE_NOTE:
		return "note", nil
	case qbankTypes.QUESTION_TYPE_DATE:
		return "date", nil
	case qbankTypes.QUESTION_TYPE_TIME:
		return "time", nil
	case qbankTypes.QUESTION_TYPE_DATETIME:
		return "datetime", nil
	case qbankTypes.QUESTION_TYPE_IMAGE:
		return "image", nil
	case qbankTypes.QUESTION_TYPE_AUDIO:
		return "audio", nil
	case qbankTypes.QUESTION_TYPE_VIDEO:
		return "video", nil
	case qbankTypes.QUESTION_TYPE_FILE:
		return "file", nil
	case qbankTypes.QUESTION_TYPE_BARCODE:
		return "barcode", nil
	case qbankTypes.QUESTION_TYPE_ACKNOWLEDGE:
		return "acknowledge", nil
	default:
		return "", fmt.Errorf("unknown question type: %d", question.Type)
	}
}

func renderBool(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

func questionRow(question qbankTypes.Question, collections map[string]qbankTypes.ChoiceCollection) (Row, error) {
	typeName, err := xlsformTypeName(question, collections)
	if err != nil {
		return nil, err
	}
	return Row{
		"name":               question.Name,
		"type":               typeName,
		"label":              question.Label,
		"hint":               question.Hint,
		"default":            question.Default,
		"guidance_hint":      question.GuidanceHint,
		"trigger":            question.Trigger,
		"readonly":           question.Readonly,
		"required":           renderBool(question.Required),
		"required_message":   question.RequiredMessage,
		"relevant":           question.Relevant,
		"constraint":         question.Constraint,
		"constraint_message": question.ConstraintMessage,
		"appearance":         question.Appearance,
		"calculation":        question.Calculation,
		"parameters":         question.Parameters,
		"choice_filter":      question.ChoiceFilter,
		"image":              question.Image,
		"video":              question.Video,
	}, nil
}

func leafGroupBeginRow(leafGroup qbankTypes.LeafGroup) (Row, error) {
	label, err := leafGroup.DisplayLabel()
	if err != nil {
		return nil, err
	}
	return Row{
		"name":     leafGroup.Name,
		"type":     TYPE_BEGIN_GROUP,
		"label":    label,
		"relevant": leafGroup.Relevant,
	}, nil
}

func categoryGroupBeginRow(name string, label string) Row {
	return Row{
		"name":  name,
		"type":  TYPE_BEGIN_GROUP,
		"label": label,
	}
}

var endGroupRow = Row{"type": TYPE_END_GROUP}

// GenerateData flattens the questionnaire into the three logical sheets.
// Hidden leaf groups and hidden questions are excluded. An unknown leaf
// group shape aborts the whole export, there is no partial output.
func GenerateData(data QuestionnaireData) (survey Sheet, choices Sheet, settings Sheet, err error) {
	visibleGroups := make([]qbankTypes.LeafGroup, 0, len(data.LeafGroups))
	for _, lg := range data.LeafGroups {
		if lg.IsHidden {
			continue
		}
		visibleGroups = append(visibleGroups, lg)
	}

	// Per leaf group row blocks: begin row, question rows, end row.
	// Referenced choice collections are collected lazily in first
	// reference order, de-duplicated by id.
	leafGroupRows := map[string][]Row{}
	var usedCollectionIDs []string
	seenCollections := map[string]struct{}{}

	for _, lg := range visibleGroups {
		groupID := lg.ID.Hex()
		beginRow, rowErr := leafGroupBeginRow(lg)
		if rowErr != nil {
			return survey, choices, settings, rowErr
		}
		rows := []Row{beginRow}
		for _, question := range data.QuestionsByLeafGroup[groupID] {
			if question.IsHidden {
				continue
			}
			qRow, rowErr := questionRow(question, data.ChoiceCollections)
			if rowErr != nil {
				return survey, choices, settings, rowErr
			}
			rows = append(rows, qRow)
			if !question.ChoiceCollectionID.IsZero() {
				collectionID := question.ChoiceCollectionID.Hex()
				if _, ok := seenCollections[collectionID]; !ok {
					seenCollections[collectionID] = struct{}{}
					usedCollectionIDs = append(usedCollectionIDs, collectionID)
				}
			}
		}
		rows = append(rows, endGroupRow)
		leafGroupRows[groupID] = rows
	}

	var surveyRows []Row
	appendTreeNodes(BuildGroupTree(visibleGroups), "", leafGroupRows, &surveyRows)

	var choiceRows []Row
	for _, collectionID := range usedCollectionIDs {
		collection := data.ChoiceCollections[collectionID]
		for _, choice := range collection.Choices {
			choiceRows = append(choiceRows, Row{
				"list name": collection.Name,
				"name":      choice.Name,
				"label":     choice.Label,
			})
		}
	}

	settingsRows := []Row{{
		"form_title": data.Questionnaire.Title,
		"form_id":    data.Questionnaire.ID.Hex(),
		"version":    data.Questionnaire.Version,
	}}

	survey = Sheet{Name: SHEET_NAME_SURVEY, Headers: SurveyHeaders, Rows: surveyRows}
	choices = Sheet{Name: SHEET_NAME_CHOICES, Headers: ChoiceHeaders, Rows: choiceRows}
	settings = Sheet{Name: SHEET_NAME_SETTINGS, Headers: SettingsHeaders, Rows: settingsRows}
	return survey, choices, settings, nil
}

// appendTreeNodes walks the group tree in order: synthetic category
// groups emit their own begin/end rows around their children, leaf nodes
// splice in the pre-built leaf group block.
func appendTreeNodes(nodes []GroupTreeNode, parentKey string, leafGroupRows map[string][]Row, out *[]Row) {
	for _, node := range nodes {
		if node.IsLeaf {
			*out = append(*out, leafGroupRows[node.LeafGroupID]...)
			continue
		}
		nodeKey := CATEGORY_GROUP_KEY_PREFIX + node.Key
		if parentKey != "" {
			nodeKey = strings.Join([]string{parentKey, nodeKey}, CATEGORY_GROUP_KEY_SEPARATOR)
		}
		*out = append(*out, categoryGroupBeginRow(nodeKey, node.Label))
		appendTreeNodes(node.Children, nodeKey, leafGroupRows, out)
		*out = append(*out, endGroupRow)
	}
}
