package xlsform

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	SHEET_NAME_SURVEY  = "survey"
	SHEET_NAME_CHOICES = "choices"
)

// ReadWorkbook extracts an XLSForm shaped workbook into the record tree
// the parser consumes: survey rows nested by their begin/end group
// markers, select rows carrying their choice list.
func ReadWorkbook(reader io.Reader) (Record, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return Record{}, err
	}
	defer f.Close()

	choiceLists, err := readChoiceLists(f)
	if err != nil {
		return Record{}, err
	}

	rows, err := f.GetRows(SHEET_NAME_SURVEY)
	if err != nil {
		return Record{}, fmt.Errorf("missing survey sheet: %w", err)
	}
	if len(rows) == 0 {
		return Record{}, fmt.Errorf("survey sheet is empty")
	}

	headers := rows[0]
	root := Record{Type: "survey"}
	stack := []*Record{&root}

	for rowIndex, row := range rows[1:] {
		cell := func(column string) string {
			for i, header := range headers {
				if header == column && i < len(row) {
					return strings.TrimSpace(row[i])
				}
			}
			return ""
		}

		typeCell := cell("type")
		if typeCell == "" {
			continue
		}

		basicType, listName := splitTypeCell(typeCell)
		top := stack[len(stack)-1]

		switch basicType {
		case "begin group":
			top.Children = append(top.Children, Record{
				Type:       "group",
				Name:       cell("name"),
				DebugIndex: rowIndex + 2,
			})
			stack = append(stack, &top.Children[len(top.Children)-1])
		case "end group":
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		default:
			record := Record{
				Type:       basicType,
				Name:       cell("name"),
				Label:      map[string]string{},
				Fields:     map[string]string{},
				ListName:   listName,
				Choices:    choiceLists[listName],
				DebugIndex: rowIndex + 2,
			}
			for i, header := range headers {
				if i >= len(row) || header == "type" || header == "name" {
					continue
				}
				value := strings.TrimSpace(row[i])
				if value == "" {
					continue
				}
				if header == "label" {
					record.Label["default"] = value
				} else if lang, ok := strings.CutPrefix(header, "label::"); ok {
					record.Label[lang] = value
				} else {
					record.Fields[header] = value
				}
			}
			top.Children = append(top.Children, record)
		}
	}

	return root, nil
}

// splitTypeCell resolves the raw type cell into the canonical basic type
// and, for select/rank rows, the referenced list name.
func splitTypeCell(raw string) (basicType string, listName string) {
	normalized := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	fields := strings.Fields(raw)

	withList := func(name string, skip int) (string, string) {
		if len(fields) > skip {
			return name, fields[skip]
		}
		return name, ""
	}

	switch {
	case normalized == "begin group" || normalized == "begin_group":
		return "begin group", ""
	case normalized == "end group" || normalized == "end_group":
		return "end group", ""
	case strings.HasPrefix(normalized, "select_one ") || strings.HasPrefix(normalized, "select one "):
		if strings.HasPrefix(normalized, "select one ") {
			return withList("select one", 2)
		}
		return withList("select one", 1)
	case strings.HasPrefix(normalized, "select_multiple ") || strings.HasPrefix(normalized, "select multiple "):
		if strings.HasPrefix(normalized, "select multiple ") {
			return withList("select multiple", 2)
		}
		return withList("select multiple", 1)
	case strings.HasPrefix(normalized, "select all that apply "):
		return withList("select all that apply", 4)
	case strings.HasPrefix(normalized, "rank "):
		return withList("rank", 1)
	default:
		return normalized, ""
	}
}

func readChoiceLists(f *excelize.File) (map[string][]ChoiceRecord, error) {
	lists := map[string][]ChoiceRecord{}

	rows, err := f.GetRows(SHEET_NAME_CHOICES)
	if err != nil {
		// a form without select questions may carry no choices sheet
		return lists, nil
	}
	if len(rows) == 0 {
		return lists, nil
	}

	headers := rows[0]
	for _, row := range rows[1:] {
		cell := func(column string) string {
			for i, header := range headers {
				if header == column && i < len(row) {
					return strings.TrimSpace(row[i])
				}
			}
			return ""
		}

		listName := cell("list name")
		if listName == "" {
			listName = cell("list_name")
		}
		if listName == "" {
			continue
		}

		choice := ChoiceRecord{
			Name:  cell("name"),
			Label: map[string]string{},
		}
		for i, header := range headers {
			if i >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[i])
			if value == "" {
				continue
			}
			if header == "label" {
				choice.Label["default"] = value
			} else if lang, ok := strings.CutPrefix(header, "label::"); ok {
				choice.Label[lang] = value
			}
		}
		lists[listName] = append(lists[listName], choice)
	}

	return lists, nil
}
