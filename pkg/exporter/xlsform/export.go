package xlsform

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// QuestionnaireExporter holds the generated sheets of one export run and
// writes them to the supported sinks.
type QuestionnaireExporter struct {
	survey   Sheet
	choices  Sheet
	settings Sheet
}

func NewQuestionnaireExporter(data QuestionnaireData) (*QuestionnaireExporter, error) {
	survey, choices, settings, err := GenerateData(data)
	if err != nil {
		return nil, err
	}
	return &QuestionnaireExporter{
		survey:   survey,
		choices:  choices,
		settings: settings,
	}, nil
}

func (qe *QuestionnaireExporter) Sheets() (survey Sheet, choices Sheet, settings Sheet) {
	return qe.survey, qe.choices, qe.settings
}

// WriteXLSX writes the survey, choices and settings sheets as an xlsx
// workbook, header row first, columns in contract order.
func (qe *QuestionnaireExporter) WriteXLSX(writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range []Sheet{qe.survey, qe.choices, qe.settings} {
		if i == 0 {
			// reuse the default sheet for the first one
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return err
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return err
			}
		}
		if err := writeSheet(f, sheet); err != nil {
			return err
		}
	}

	return f.Write(writer)
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	header := make([]interface{}, len(sheet.Headers))
	for i, column := range sheet.Headers {
		header[i] = column
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}
	for rowIndex, row := range sheet.Rows {
		values := make([]interface{}, len(sheet.Headers))
		for i, column := range sheet.Headers {
			values[i] = row[column]
		}
		cell := fmt.Sprintf("A%d", rowIndex+2)
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// WriteSurveyCSV writes the survey sheet as CSV with the same column
// order as the workbook.
func (qe *QuestionnaireExporter) WriteSurveyCSV(writer io.Writer) error {
	w := csv.NewWriter(writer)

	if err := w.Write(qe.survey.Headers); err != nil {
		return err
	}
	for _, row := range qe.survey.Rows {
		line := make([]string, len(qe.survey.Headers))
		for i, column := range qe.survey.Headers {
			line[i] = row[column]
		}
		if err := w.Write(line); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
