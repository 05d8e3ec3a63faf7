package taxonomy

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists = errors.New("leaf group with the same categories already exists")
)

// CategoryTuple identifies one leaf group within a scope. Zero values mean
// the category is absent (only legal for 3/4 on Matrix 1D).
type CategoryTuple struct {
	Category1 Category1
	Category2 Category2
	Category3 Category3
	Category4 Category4
}

func (t CategoryTuple) String() string {
	if t.Category3 == 0 && t.Category4 == 0 {
		return fmt.Sprintf("%s::%s", t.Category1, t.Category2)
	}
	return fmt.Sprintf("%s::%s::%s::%s", t.Category1, t.Category2, t.Category3, t.Category4)
}

// Validate checks a category tuple against the taxonomy maps for the
// given leaf group type. It is a pure check, uniqueness within a scope is
// handled separately by ValidateUnique.
func Validate(groupType LeafGroupType, tuple CategoryTuple) error {
	switch groupType {
	case LEAF_GROUP_TYPE_MATRIX_1D:
		legalC2, ok := Matrix1DMap[tuple.Category1]
		if !ok {
			return fmt.Errorf("wrong category 1 provided for Matrix 1D: %d", tuple.Category1)
		}
		if !containsCategory(legalC2, tuple.Category2) {
			return fmt.Errorf("wrong category 2 provided for Matrix 1D: %d", tuple.Category2)
		}
		if tuple.Category3 != 0 || tuple.Category4 != 0 {
			return errors.New("category 3/4 are only for Matrix 2D")
		}
	case LEAF_GROUP_TYPE_MATRIX_2D:
		legalC2, ok := Matrix2DRows[tuple.Category1]
		if !ok {
			return fmt.Errorf("wrong category 1 provided for Matrix 2D: %d", tuple.Category1)
		}
		if !containsCategory(legalC2, tuple.Category2) {
			return fmt.Errorf("wrong category 2 provided for Matrix 2D: %d", tuple.Category2)
		}
		if tuple.Category3 == 0 || tuple.Category4 == 0 {
			return errors.New("category 3/4 needs to be defined for Matrix 2D")
		}
		legalC4, ok := Matrix2DColumns[tuple.Category3]
		if !ok {
			return fmt.Errorf("wrong category 3 provided for Matrix 2D: %d", tuple.Category3)
		}
		if !containsCategory(legalC4, tuple.Category4) {
			return fmt.Errorf("wrong category 4 provided for Matrix 2D: %d", tuple.Category4)
		}
	default:
		return fmt.Errorf("not implemented leaf group type: %d", groupType)
	}
	return nil
}

// ValidateUnique fails with ErrAlreadyExists if the tuple is already
// present in the scope. Callers pass the existing tuples of the owning
// bank or questionnaire, excluding the group being updated.
func ValidateUnique(tuple CategoryTuple, existing map[CategoryTuple]struct{}) error {
	if _, ok := existing[tuple]; ok {
		return ErrAlreadyExists
	}
	return nil
}

// Matrix1DTupleCount and Matrix2DTupleCount report the size of the legal
// cross products, used by the importer pre-seed step.

func Matrix1DTupleCount() int {
	count := 0
	for _, c2List := range Matrix1DMap {
		count += len(c2List)
	}
	return count
}

func Matrix2DTupleCount() int {
	rows := 0
	for _, c2List := range Matrix2DRows {
		rows += len(c2List)
	}
	cols := 0
	for _, c4List := range Matrix2DColumns {
		cols += len(c4List)
	}
	return rows * cols
}
