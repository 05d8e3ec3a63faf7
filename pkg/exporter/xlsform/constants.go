package xlsform

// Sheet names of the target workbook.
const (
	SHEET_NAME_SURVEY   = "survey"
	SHEET_NAME_CHOICES  = "choices"
	SHEET_NAME_SETTINGS = "settings"
)

const (
	TYPE_BEGIN_GROUP = "begin group"
	TYPE_END_GROUP   = "end group"

	OR_OTHER_SUFFIX = " or_other"

	// Synthetic branch group rows get this key prefix, ancestor keys
	// joined with the separator, to stay unique across the whole sheet.
	CATEGORY_GROUP_KEY_PREFIX    = "category__"
	CATEGORY_GROUP_KEY_SEPARATOR = "__"
)

// Column orders are part of the wire contract, do not reorder.
var SurveyHeaders = []string{
	"name",
	"type",
	"label",
	"hint",
	"default",
	"guidance_hint",
	"trigger",
	"readonly",
	"required",
	"required_message",
	"relevant",
	"constraint",
	"constraint_message",
	"appearance",
	"calculation",
	"parameters",
	"choice_filter",
	"image",
	"video",
}

var ChoiceHeaders = []string{
	"list name",
	"name",
	"label",
}

var SettingsHeaders = []string{
	"form_title",
	"form_id",
	"version",
}
