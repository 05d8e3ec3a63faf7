package taxonomy

import (
	"errors"
	"testing"
)

func TestValidateMatrix1D(t *testing.T) {
	t.Run("full cross product is valid", func(t *testing.T) {
		for _, c1 := range Matrix1DPillars {
			for _, c2 := range Matrix1DMap[c1] {
				err := Validate(LEAF_GROUP_TYPE_MATRIX_1D, CategoryTuple{Category1: c1, Category2: c2})
				if err != nil {
					t.Errorf("unexpected error for %s::%s: %s", c1, c2, err.Error())
				}
			}
		}
	})

	t.Run("category 2 outside legal children", func(t *testing.T) {
		err := Validate(LEAF_GROUP_TYPE_MATRIX_1D, CategoryTuple{
			Category1: Category1Context,
			Category2: Category2Dead, // belongs to Casualties
		})
		if err == nil {
			t.Error("expected error for illegal sub pillar")
		}
	})

	t.Run("2D pillar rejected", func(t *testing.T) {
		err := Validate(LEAF_GROUP_TYPE_MATRIX_1D, CategoryTuple{
			Category1: Category1Impact,
			Category2: Category2Drivers,
		})
		if err == nil {
			t.Error("expected error for Matrix 2D pillar on Matrix 1D group")
		}
	})

	t.Run("category 3/4 forbidden", func(t *testing.T) {
		err := Validate(LEAF_GROUP_TYPE_MATRIX_1D, CategoryTuple{
			Category1: Category1Context,
			Category2: Category2Politics,
			Category3: Category3Health,
		})
		if err == nil {
			t.Error("expected error when category 3 is set on Matrix 1D group")
		}
	})
}

func TestValidateMatrix2D(t *testing.T) {
	t.Run("full cross product is valid", func(t *testing.T) {
		for _, c1 := range Matrix2DPillars {
			for _, c2 := range Matrix2DRows[c1] {
				for _, c3 := range Matrix2DSectors {
					for _, c4 := range Matrix2DColumns[c3] {
						err := Validate(LEAF_GROUP_TYPE_MATRIX_2D, CategoryTuple{
							Category1: c1,
							Category2: c2,
							Category3: c3,
							Category4: c4,
						})
						if err != nil {
							t.Errorf("unexpected error for %s::%s::%s::%s: %s", c1, c2, c3, c4, err.Error())
						}
					}
				}
			}
		}
	})

	t.Run("missing category 3/4", func(t *testing.T) {
		err := Validate(LEAF_GROUP_TYPE_MATRIX_2D, CategoryTuple{
			Category1: Category1Impact,
			Category2: Category2Drivers,
		})
		if err == nil {
			t.Error("expected error for missing category 3/4")
		}
	})

	t.Run("category 4 outside sector", func(t *testing.T) {
		err := Validate(LEAF_GROUP_TYPE_MATRIX_2D, CategoryTuple{
			Category1: Category1Impact,
			Category2: Category2Drivers,
			Category3: Category3Health,
			Category4: Category4WaterSupply, // belongs to WASH
		})
		if err == nil {
			t.Error("expected error for illegal sub sector")
		}
	})

	t.Run("unknown group type", func(t *testing.T) {
		err := Validate(LeafGroupType(99), CategoryTuple{
			Category1: Category1Context,
			Category2: Category2Politics,
		})
		if err == nil {
			t.Error("expected error for unknown group type")
		}
	})
}

func TestValidateUnique(t *testing.T) {
	existing := map[CategoryTuple]struct{}{
		{Category1: Category1Context, Category2: Category2Politics}: {},
	}

	t.Run("duplicate tuple", func(t *testing.T) {
		err := ValidateUnique(CategoryTuple{Category1: Category1Context, Category2: Category2Politics}, existing)
		if !errors.Is(err, ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got: %v", err)
		}
	})

	t.Run("new tuple", func(t *testing.T) {
		err := ValidateUnique(CategoryTuple{Category1: Category1Context, Category2: Category2Economics}, existing)
		if err != nil {
			t.Errorf("unexpected error: %s", err.Error())
		}
	})
}

func TestNormalizeCategoryToken(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Politics", "POLITICS"},
		{"  Sub pillar ", "SUB_PILLAR"},
		{"Socio-cultural", "SOCIO_CULTURAL"},
		{"Hazards & threats", "HAZARDS_AND_THREATS"},
		{"Knowledge and info gaps (Pop)", "KNOWLEDGE_AND_INFO_GAPS_POP"},
		{"WASH in health care facilities", "WASH_IN_HEALTH_CARE_FACILITIES"},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			result := NormalizeCategoryToken(test.raw)
			if result != test.expected {
				t.Errorf("unexpected token. Got: %s, Expected: %s", result, test.expected)
			}
		})
	}
}

func TestCategoryFromToken(t *testing.T) {
	t.Run("by label", func(t *testing.T) {
		c, ok := Category2FromToken(NormalizeCategoryToken("Socio-cultural"))
		if !ok || c != Category2SocioCultural {
			t.Errorf("unexpected result: %v %v", c, ok)
		}
	})

	t.Run("by identifier name", func(t *testing.T) {
		c, ok := Category4FromToken("HOUSING_LAND_AND_PROPERTY_HLP")
		if !ok || c != Category4HousingLandAndProperty {
			t.Errorf("unexpected result: %v %v", c, ok)
		}
	})

	t.Run("miss", func(t *testing.T) {
		if _, ok := Category1FromToken("NOT_A_REAL_CATEGORY"); ok {
			t.Error("expected lookup miss")
		}
	})
}
