package xlsform

// Record is one node of the parsed spreadsheet: either a structural
// survey/group node with children, or a field/question node with its
// scalar columns. The workbook reader produces this shape, the parser
// consumes it.
type Record struct {
	// lower cased basic type, e.g. "survey", "group", "integer",
	// "select one"
	Type string
	Name string
	// language code -> label text, "default" for the unqualified label
	// column
	Label map[string]string
	// remaining scalar columns by header name
	Fields map[string]string

	// set on select/rank rows
	ListName string
	Choices  []ChoiceRecord

	Children []Record

	// source row position, carried into soft error messages
	DebugIndex int
}

type ChoiceRecord struct {
	Name  string
	Label map[string]string
}

func (r Record) field(key string) string {
	return r.Fields[key]
}
