package xlsform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

// parseLabel picks the default language label, falling back to the first
// available translation.
func parseLabel(labels map[string]string) string {
	if label, ok := labels["default"]; ok && label != "" {
		return label
	}
	keys := make([]string, 0, len(labels))
	for key := range labels {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if labels[key] != "" {
			return labels[key]
		}
	}
	return ""
}

func normalizeMetaToken(value string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToUpper(value)), " ", "_")
}

// parsePriorityLevel maps the "Priority level" column; a "priority"
// prefix/suffix in the cell is dropped before matching.
func parsePriorityLevel(value string) (qbankTypes.PriorityLevel, error) {
	token := normalizeMetaToken(strings.ReplaceAll(strings.ToUpper(value), "PRIORITY", ""))
	switch token {
	case "HIGH":
		return qbankTypes.PRIORITY_LEVEL_HIGH, nil
	case "MEDIUM":
		return qbankTypes.PRIORITY_LEVEL_MEDIUM, nil
	case "LOW":
		return qbankTypes.PRIORITY_LEVEL_LOW, nil
	}
	return 0, fmt.Errorf("unknown priority level: %q", value)
}

// parseEnumeratorSkill maps the "Enumerator skill level required" column
// with the MEDIUM alias the source files use.
func parseEnumeratorSkill(value string) (qbankTypes.EnumeratorSkill, error) {
	switch normalizeMetaToken(value) {
	case "BASIC":
		return qbankTypes.ENUMERATOR_SKILL_BASIC, nil
	case "INTERMEDIATE", "MEDIUM":
		return qbankTypes.ENUMERATOR_SKILL_INTERMEDIATE, nil
	case "ADVANCED":
		return qbankTypes.ENUMERATOR_SKILL_ADVANCED, nil
	}
	return 0, fmt.Errorf("unknown enumerator skill: %q", value)
}

// parseDataCollectionMethod maps the "Data Collection Methods" column
// with the aliases the source files use.
func parseDataCollectionMethod(value string) (qbankTypes.DataCollectionMethod, error) {
	token := strings.ReplaceAll(normalizeMetaToken(value), "-", "_")
	switch token {
	case "DIRECT", "DIRECT_OBSERVATION":
		return qbankTypes.DATA_COLLECTION_METHOD_DIRECT, nil
	case "FOCUS_GROUP":
		return qbankTypes.DATA_COLLECTION_METHOD_FOCUS_GROUP, nil
	case "ONE_ON_ONE_INTERVIEW", "1_ON_1_INTERVIEWS":
		return qbankTypes.DATA_COLLECTION_METHOD_ONE_ON_ONE_INTERVIEW, nil
	case "OPEN_ENDED_SURVEY":
		return qbankTypes.DATA_COLLECTION_METHOD_OPEN_ENDED_SURVEY, nil
	case "CLOSED_ENDED_SURVEY":
		return qbankTypes.DATA_COLLECTION_METHOD_CLOSED_ENDED_SURVEY, nil
	case "KEY_INFORMANT_INTERVIEW":
		return qbankTypes.DATA_COLLECTION_METHOD_KEY_INFORMANT_INTERVIEW, nil
	case "AUTOMATIC":
		return qbankTypes.DATA_COLLECTION_METHOD_AUTOMATIC, nil
	}
	return 0, fmt.Errorf("unknown data collection method: %q", value)
}

// parseRequiredDuration converts the "Time(min)" column (float minutes)
// to seconds.
func parseRequiredDuration(value string) (int, error) {
	minutes, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("Time(min) should be float value: %s", value)
	}
	return int(minutes * 60), nil
}

func parseRequired(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return true
	}
	return false
}
