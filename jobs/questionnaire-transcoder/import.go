package main

import (
	"fmt"
	"log/slog"
	"os"

	importer "github.com/the-deep/qber-backend/pkg/importer/xlsform"
	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

// runImportTask parses the uploaded XLSForm workbook against the bank's
// pre-seeded leaf groups and persists everything that parsed cleanly.
// Rows with soft errors are skipped, their messages end up on the task.
func runImportTask(instanceID string, task qbankTypes.TranscodeTask) error {
	questionBank, err := qbankDBService.GetQuestionBankByID(instanceID, task.QuestionBankID.Hex())
	if err != nil {
		return fmt.Errorf("failed to load question bank: %w", err)
	}
	if !questionBank.IsSeeded {
		return fmt.Errorf("question bank %s is not seeded", questionBank.ID.Hex())
	}

	file, err := os.Open(task.SourceFile)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer file.Close()

	root, err := importer.ReadWorkbook(file)
	if err != nil {
		return fmt.Errorf("failed to read workbook: %w", err)
	}

	leafGroups, err := qbankDBService.GetLeafGroupsForBank(instanceID, questionBank.ID)
	if err != nil {
		return fmt.Errorf("failed to load leaf groups: %w", err)
	}

	imp := importer.NewImporter(questionBank.ID, leafGroups)
	result := imp.Process(root)

	counts, err := qbankDBService.SaveImportResult(instanceID, questionBank.ID, task.SourceFile, result.ChoiceCollections, result.Questions)
	if err != nil {
		return fmt.Errorf("failed to persist import result: %w", err)
	}
	counts.LeafGroups = len(leafGroups)

	slog.Info("import finished",
		slog.String("instanceID", instanceID),
		slog.String("questionBankID", questionBank.ID.Hex()),
		slog.Int("questions", counts.Questions),
		slog.Int("choiceCollections", counts.ChoiceCollections),
		slog.Int("softErrors", len(result.Errors)))

	return qbankDBService.UpdateTranscodeTaskSuccess(instanceID, task.ID, "", result.Errors, counts)
}
