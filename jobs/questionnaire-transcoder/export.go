package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	exporter "github.com/the-deep/qber-backend/pkg/exporter/xlsform"
	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

// runExportTask renders a questionnaire to the requested spreadsheet
// format and stores the file under the job's filestore path.
func runExportTask(instanceID string, task qbankTypes.TranscodeTask) error {
	questionnaire, err := qbankDBService.GetQuestionnaireByID(instanceID, task.QuestionnaireID.Hex())
	if err != nil {
		return fmt.Errorf("failed to load questionnaire: %w", err)
	}

	leafGroups, err := qbankDBService.GetLeafGroupsForQuestionnaire(instanceID, questionnaire.ID)
	if err != nil {
		return fmt.Errorf("failed to load leaf groups: %w", err)
	}
	questions, err := qbankDBService.GetQuestionsForQuestionnaire(instanceID, questionnaire.ID)
	if err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}
	collections, err := qbankDBService.GetChoiceCollectionsForQuestionnaire(instanceID, questionnaire.ID)
	if err != nil {
		return fmt.Errorf("failed to load choice collections: %w", err)
	}

	data := exporter.BuildQuestionnaireData(questionnaire, leafGroups, questions, collections)
	questionnaireExporter, err := exporter.NewQuestionnaireExporter(data)
	if err != nil {
		return err
	}

	format := task.Format
	if format == "" {
		format = "xlsx"
	}

	exportDir := filepath.Join(conf.FilestorePath, instanceID, "questionnaire-exports")
	if err := os.MkdirAll(exportDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%d.%s", questionnaire.ID.Hex(), time.Now().Unix(), format)
	resultPath := filepath.Join(exportDir, filename)

	file, err := os.Create(resultPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	switch format {
	case "csv":
		err = questionnaireExporter.WriteSurveyCSV(file)
	default:
		err = questionnaireExporter.WriteXLSX(file)
	}
	if err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return qbankDBService.UpdateTranscodeTaskSuccess(instanceID, task.ID, resultPath, nil, qbankTypes.ImportCounts{})
}
