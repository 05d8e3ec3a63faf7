package xlsform

import (
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/the-deep/qber-backend/pkg/qbank/taxonomy"
	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

// basicQuestionTypeMap resolves the lower cased XLSForm type string of a
// row to the internal question type.
var basicQuestionTypeMap = map[string]qbankTypes.QuestionType{
	"integer":               qbankTypes.QUESTION_TYPE_INTEGER,
	"decimal":               qbankTypes.QUESTION_TYPE_DECIMAL,
	"text":                  qbankTypes.QUESTION_TYPE_TEXT,
	"select one":            qbankTypes.QUESTION_TYPE_SELECT_ONE,
	"select multiple":       qbankTypes.QUESTION_TYPE_SELECT_MULTIPLE,
	"select all that apply": qbankTypes.QUESTION_TYPE_SELECT_MULTIPLE,
	"rank":                  qbankTypes.QUESTION_TYPE_RANK,
	"range":                 qbankTypes.QUESTION_TYPE_RANGE,
	"note":                  qbankTypes.QUESTION_TYPE_NOTE,
	"date":                  qbankTypes.QUESTION_TYPE_DATE,
	"time":                  qbankTypes.QUESTION_TYPE_TIME,
	"datetime":              qbankTypes.QUESTION_TYPE_DATETIME,
	"image":                 qbankTypes.QUESTION_TYPE_IMAGE,
	"audio":                 qbankTypes.QUESTION_TYPE_AUDIO,
	"video":                 qbankTypes.QUESTION_TYPE_VIDEO,
	"file":                  qbankTypes.QUESTION_TYPE_FILE,
	"barcode":               qbankTypes.QUESTION_TYPE_BARCODE,
	"acknowledge":           qbankTypes.QUESTION_TYPE_ACKNOWLEDGE,
}

// Category column headers of the source files.
const (
	COLUMN_PILLAR     = "Pillar"
	COLUMN_SUB_PILLAR = "Sub pillar"
	COLUMN_SECTOR     = "Sector"
	COLUMN_SUB_SECTOR = "Sub sector"

	COLUMN_PRIORITY_LEVEL         = "Priority level"
	COLUMN_ENUMERATOR_SKILL       = "Enumerator skill level required"
	COLUMN_DATA_COLLECTION_METHOD = "Data Collection Methods"
	COLUMN_REQUIRED_DURATION      = "Time(min)"
)

// PreSeedLeafGroups generates the full taxonomy cross product of leaf
// groups for a question bank, in deterministic order with ids already
// assigned. The result is expected to be bulk inserted exactly once per
// bank before parsing begins.
func PreSeedLeafGroups(questionBankID primitive.ObjectID) []qbankTypes.LeafGroup {
	leafGroups := make([]qbankTypes.LeafGroup, 0, taxonomy.Matrix1DTupleCount()+taxonomy.Matrix2DTupleCount())
	order := 0

	newGroup := func(groupType taxonomy.LeafGroupType, tuple taxonomy.CategoryTuple) qbankTypes.LeafGroup {
		order++
		return qbankTypes.LeafGroup{
			ID:             primitive.NewObjectID(),
			QuestionBankID: questionBankID,
			Name:           qbankTypes.DefaultLeafGroupName(tuple),
			Type:           groupType,
			Order:          order,
			Category1:      tuple.Category1,
			Category2:      tuple.Category2,
			Category3:      tuple.Category3,
			Category4:      tuple.Category4,
		}
	}

	for _, c1 := range taxonomy.Matrix1DPillars {
		for _, c2 := range taxonomy.Matrix1DMap[c1] {
			leafGroups = append(leafGroups, newGroup(
				taxonomy.LEAF_GROUP_TYPE_MATRIX_1D,
				taxonomy.CategoryTuple{Category1: c1, Category2: c2},
			))
		}
	}
	for _, c1 := range taxonomy.Matrix2DPillars {
		for _, c2 := range taxonomy.Matrix2DRows[c1] {
			for _, c3 := range taxonomy.Matrix2DSectors {
				for _, c4 := range taxonomy.Matrix2DColumns[c3] {
					leafGroups = append(leafGroups, newGroup(
						taxonomy.LEAF_GROUP_TYPE_MATRIX_2D,
						taxonomy.CategoryTuple{Category1: c1, Category2: c2, Category3: c3, Category4: c4},
					))
				}
			}
		}
	}
	return leafGroups
}

// Result of one import run: everything parsed, nothing persisted yet.
// Partial success is the normal outcome, the soft errors travel with the
// parsed rows.
type Result struct {
	ChoiceCollections []qbankTypes.ChoiceCollection
	Questions         []qbankTypes.Question
	Errors            []string
}

// Importer accumulates parsed rows of one XLSForm workbook against a
// pre-seeded leaf group set.
type Importer struct {
	questionBankID primitive.ObjectID

	leafGroupMap          map[taxonomy.CategoryTuple]qbankTypes.LeafGroup
	choiceCollectionMap   map[string]*qbankTypes.ChoiceCollection
	choiceCollectionOrder []string
	questions             []qbankTypes.Question
	errors                []string
}

// NewImporter prepares an import run. leafGroups must be the pre-seeded
// groups of the target bank (one per legal category combination).
func NewImporter(questionBankID primitive.ObjectID, leafGroups []qbankTypes.LeafGroup) *Importer {
	leafGroupMap := make(map[taxonomy.CategoryTuple]qbankTypes.LeafGroup, len(leafGroups))
	for _, lg := range leafGroups {
		leafGroupMap[lg.Tuple()] = lg
	}
	return &Importer{
		questionBankID:      questionBankID,
		leafGroupMap:        leafGroupMap,
		choiceCollectionMap: map[string]*qbankTypes.ChoiceCollection{},
	}
}

// Process walks the record tree and returns the accumulated result.
func (imp *Importer) Process(root Record) Result {
	imp.processEach(root)

	collections := make([]qbankTypes.ChoiceCollection, 0, len(imp.choiceCollectionOrder))
	for _, name := range imp.choiceCollectionOrder {
		collections = append(collections, *imp.choiceCollectionMap[name])
	}
	return Result{
		ChoiceCollections: collections,
		Questions:         imp.questions,
		Errors:            imp.errors,
	}
}

func (imp *Importer) logError(msg string) {
	imp.errors = append(imp.errors, msg)
}

func debugPrefix(record Record) string {
	index := "N/A"
	if record.DebugIndex > 0 {
		index = fmt.Sprintf("%d", record.DebugIndex)
	}
	return fmt.Sprintf("qber-debug-index: %s -- ", index)
}

func (imp *Importer) processEach(record Record) {
	recordType := strings.ToLower(record.Type)

	// The source file's own grouping is ignored, leaf group
	// categorization supersedes it.
	if recordType == "survey" || recordType == "group" {
		for _, child := range record.Children {
			imp.processEach(child)
		}
		return
	}

	questionType, ok := basicQuestionTypeMap[recordType]
	if !ok {
		imp.logError(fmt.Sprintf("%sNo type found for %q", debugPrefix(record), record.Type))
		return
	}

	question := qbankTypes.Question{
		ID:             primitive.NewObjectID(),
		QuestionBankID: imp.questionBankID,
		Type:           questionType,
		Name:           record.Name,
		Label:          parseLabel(record.Label),
	}

	if questionType.RequiresChoiceCollection() {
		collection, err := imp.getChoiceCollection(record)
		if err != nil {
			imp.logError(debugPrefix(record) + err.Error())
			return
		}
		question.ChoiceCollectionID = collection.ID
	}

	leafGroup, ok := imp.getLeafGroup(record)
	if !ok {
		return
	}
	question.LeafGroupID = leafGroup.ID

	imp.applyScalarFields(&question, record)

	if err := question.Validate(); err != nil {
		imp.logError(debugPrefix(record) + err.Error())
		return
	}
	imp.questions = append(imp.questions, question)
}

// getChoiceCollection resolves or creates the named collection within
// this import run. On first reference it is created with its full choice
// set, later references reuse it.
func (imp *Importer) getChoiceCollection(record Record) (*qbankTypes.ChoiceCollection, error) {
	if record.ListName == "" {
		return nil, fmt.Errorf("select/rank row without a choice list name")
	}
	if collection, ok := imp.choiceCollectionMap[record.ListName]; ok {
		return collection, nil
	}

	collection := &qbankTypes.ChoiceCollection{
		ID:             primitive.NewObjectID(),
		QuestionBankID: imp.questionBankID,
		Name:           record.ListName,
		Label:          record.ListName,
	}
	for _, choice := range record.Choices {
		collection.Choices = append(collection.Choices, qbankTypes.Choice{
			Name:  choice.Name,
			Label: parseLabel(choice.Label),
		})
	}
	imp.choiceCollectionMap[record.ListName] = collection
	imp.choiceCollectionOrder = append(imp.choiceCollectionOrder, record.ListName)
	return collection, nil
}

// getLeafGroup resolves the four category columns of a row against the
// pre-seeded leaf group map. Any failure is a soft error: logged, row
// skipped, import continues.
func (imp *Importer) getLeafGroup(record Record) (qbankTypes.LeafGroup, bool) {
	pillar := strings.TrimSpace(record.field(COLUMN_PILLAR))
	subPillar := strings.TrimSpace(record.field(COLUMN_SUB_PILLAR))
	sector := strings.TrimSpace(record.field(COLUMN_SECTOR))
	subSector := strings.TrimSpace(record.field(COLUMN_SUB_SECTOR))

	if pillar == "" || subPillar == "" {
		imp.logError(fmt.Sprintf("%sSkipping as pillar=%q or sub pillar=%q is missing", debugPrefix(record), pillar, subPillar))
		return qbankTypes.LeafGroup{}, false
	}
	if (sector == "") != (subSector == "") {
		imp.logError(fmt.Sprintf("%sSkipping as sector=%q and sub sector=%q must be provided together", debugPrefix(record), sector, subSector))
		return qbankTypes.LeafGroup{}, false
	}

	var tuple taxonomy.CategoryTuple
	var ok bool

	tuple.Category1, ok = taxonomy.Category1FromToken(taxonomy.NormalizeCategoryToken(pillar))
	if !ok {
		imp.logError(fmt.Sprintf("%sFailed to parse category 1 for given value %q", debugPrefix(record), pillar))
		return qbankTypes.LeafGroup{}, false
	}
	tuple.Category2, ok = taxonomy.Category2FromToken(taxonomy.NormalizeCategoryToken(subPillar))
	if !ok {
		imp.logError(fmt.Sprintf("%sFailed to parse category 2 for given value %q", debugPrefix(record), subPillar))
		return qbankTypes.LeafGroup{}, false
	}
	if sector != "" {
		tuple.Category3, ok = taxonomy.Category3FromToken(taxonomy.NormalizeCategoryToken(sector))
		if !ok {
			imp.logError(fmt.Sprintf("%sFailed to parse category 3 for given value %q", debugPrefix(record), sector))
			return qbankTypes.LeafGroup{}, false
		}
		tuple.Category4, ok = taxonomy.Category4FromToken(taxonomy.NormalizeCategoryToken(subSector))
		if !ok {
			imp.logError(fmt.Sprintf("%sFailed to parse category 4 for given value %q", debugPrefix(record), subSector))
			return qbankTypes.LeafGroup{}, false
		}
	}

	leafGroup, ok := imp.leafGroupMap[tuple]
	if !ok {
		imp.logError(fmt.Sprintf("%sInvalid categories: %s", debugPrefix(record), tuple))
		return qbankTypes.LeafGroup{}, false
	}
	return leafGroup, true
}

// applyScalarFields maps the remaining columns onto the question. Meta
// columns with unknown values only log, they do not skip the row.
func (imp *Importer) applyScalarFields(question *qbankTypes.Question, record Record) {
	question.Hint = record.field("hint")
	question.Required = parseRequired(record.field("required"))
	question.Appearance = record.field("appearance")
	question.Relevant = record.field("relevant")
	question.Constraint = record.field("constraint")
	question.ConstraintMessage = record.field("constraint_message")

	if raw := record.field(COLUMN_PRIORITY_LEVEL); raw != "" {
		level, err := parsePriorityLevel(raw)
		if err != nil {
			slog.Debug("Unparsable priority level", slog.String("value", raw))
		} else {
			question.PriorityLevel = level
		}
	}
	if raw := record.field(COLUMN_ENUMERATOR_SKILL); raw != "" {
		skill, err := parseEnumeratorSkill(raw)
		if err != nil {
			slog.Debug("Unparsable enumerator skill", slog.String("value", raw))
		} else {
			question.EnumeratorSkill = skill
		}
	}
	if raw := record.field(COLUMN_DATA_COLLECTION_METHOD); raw != "" {
		method, err := parseDataCollectionMethod(raw)
		if err != nil {
			slog.Debug("Unparsable data collection method", slog.String("value", raw))
		} else {
			question.DataCollectionMethod = method
		}
	}
	if raw := record.field(COLUMN_REQUIRED_DURATION); raw != "" {
		duration, err := parseRequiredDuration(raw)
		if err != nil {
			imp.logError(debugPrefix(record) + err.Error())
		} else {
			question.RequiredDuration = duration
		}
	}
}
