package taxonomy

import "strings"

type LeafGroupType int

const (
	LEAF_GROUP_TYPE_MATRIX_1D LeafGroupType = 1
	LEAF_GROUP_TYPE_MATRIX_2D LeafGroupType = 2
)

func (t LeafGroupType) String() string {
	switch t {
	case LEAF_GROUP_TYPE_MATRIX_1D:
		return "Matrix 1D"
	case LEAF_GROUP_TYPE_MATRIX_2D:
		return "Matrix 2D"
	default:
		return "unknown"
	}
}

// Matrix1DMap lists the legal sub-pillar values for each Matrix 1D pillar.
var Matrix1DMap = map[Category1][]Category2{
	Category1Context: {
		Category2Politics,
		Category2Economics,
		Category2Environment,
		Category2SocioCultural,
		Category2Demographic,
		Category2SecurityAndStability,
	},
	Category1EventAndShock: {
		Category2TypeAndCharacteristics,
		Category2AggravatingFactors,
		Category2MitigatingFactors,
		Category2HazardsAndThreats,
	},
	Category1Displacement: {
		Category2DisplacementCharacteristics,
		Category2PullFactors,
		Category2PushFactors,
		Category2Intentions,
		Category2LocalIntegration,
	},
	Category1Casualties: {
		Category2Dead,
		Category2Injured,
		Category2Missing,
	},
	Category1InformationAndCommunication: {
		Category2CommunicationSourcesAndMeans,
		Category2InformationChallengesAndBarriers,
		Category2KnowledgeAndInfoGapsPop,
		Category2KnowledgeAndInfoGapsHum,
	},
	Category1HumanitarianAccess: {
		Category2PopulationToRelief,
		Category2ReliefToPopulation,
		Category2PhysicalConstraints,
		Category2SecurityConstraints,
		Category2PeopleFacingAccessConstraints,
	},
}

// Matrix2DRows lists the legal sub-pillar values for each Matrix 2D pillar.
var Matrix2DRows = map[Category1][]Category2{
	Category1Impact: {
		Category2Drivers,
		Category2ImpactOnPeople,
		Category2ImpactOnSystemsServicesAndNetworks,
		Category2NumberOfPeopleAffected,
	},
	Category1HumanitarianCondition: {
		Category2LivingStandards,
		Category2CopingMechanisms,
		Category2PhysicalAndMentalWellBeing,
		Category2NumberOfPeopleInNeed,
	},
	Category1AtRisk: {
		Category2PeopleAtRisk,
		Category2NumberOfPeopleAtRisk,
	},
	Category1PriorityNeeds: {
		Category2ExpressedByPopulation,
		Category2ExpressedByHumanitarianStaff,
	},
	Category1PriorityInterventions: {
		Category2ExpressedByPopulation,
		Category2ExpressedByHumanitarianStaff,
	},
	Category1CapacitiesAndResponse: {
		Category2GovernmentAndLocalAuthorities,
		Category2InternationalOrganizations,
		Category2NationalAndLocalOrganizations,
		Category2RedCrossRedCrescent,
		Category2HumanitarianCoordination,
		Category2PeopleReachedAndResponseGaps,
	},
}

// Matrix2DColumns lists the legal sub-sector values for each Matrix 2D sector.
var Matrix2DColumns = map[Category3][]Category4{
	Category3Cross: {
		Category4Cross,
	},
	Category3Health: {
		Category4HealthCare,
		Category4HealthStatus,
	},
	Category3WASH: {
		Category4WaterSupply,
		Category4ExcretaManagementSanitation,
		Category4SolidWasteManagement,
		Category4HygieneFacilitiesAndProducts,
		Category4WASHInSchools,
		Category4WASHInHealthCareFacilities,
		Category4VectorControl,
	},
	Category3Shelter: {
		Category4DwellingEnvelope,
		Category4DomesticLivingSpace,
		Category4NonFoodHouseholdItems,
		Category4HousingLandAndProperty,
		Category4Settlement,
	},
	Category3FoodSecurity: {
		Category4Food,
		Category4NonFoodItems,
	},
	Category3Livelihoods: {
		Category4NaturalCapital,
		Category4HumanCapital,
		Category4SocialCapital,
		Category4PhysicalCapital,
		Category4FinancialCapital,
		Category4Occupation,
	},
	Category3Nutrition: {
		Category4NutritionStatus,
		Category4NutritionServices,
	},
	Category3Education: {
		Category4Provision,
		Category4LearningEnvironment,
		Category4TeachingAndLearning,
		Category4TeachersAndOtherEducationPersonnel,
		Category4EducationPolicy,
	},
	Category3Protection: {
		Category4Documentation,
		Category4HumanCivilAndPoliticalRights,
		Category4JusticeAndRuleOfLaw,
		Category4PhysicalSafetyAndSecurity,
		Category4FreedomOfMovement,
		Category4ChildProtection,
		Category4SexualAndGenderBasedViolence,
		Category4HousingLandAndProperty,
		Category4MinesUXOsAndIEDs,
	},
	Category3Agriculture: {
		Category4Production,
		Category4AgriculturalInputs,
		Category4AgriculturalInfrastructure,
		Category4NaturalResourceManagement,
	},
	Category3Logistic: {
		Category4Transport,
		Category4ICT,
		Category4Energy,
	},
}

// Ordered key lists for the maps above. Go maps do not keep insertion
// order, but pre-seeding and exports must be deterministic across runs.
var (
	Matrix1DPillars = []Category1{
		Category1Context,
		Category1EventAndShock,
		Category1Displacement,
		Category1Casualties,
		Category1InformationAndCommunication,
		Category1HumanitarianAccess,
	}

	Matrix2DPillars = []Category1{
		Category1Impact,
		Category1HumanitarianCondition,
		Category1AtRisk,
		Category1PriorityNeeds,
		Category1PriorityInterventions,
		Category1CapacitiesAndResponse,
	}

	Matrix2DSectors = []Category3{
		Category3Cross,
		Category3Health,
		Category3WASH,
		Category3Shelter,
		Category3FoodSecurity,
		Category3Livelihoods,
		Category3Nutrition,
		Category3Education,
		Category3Protection,
		Category3Agriculture,
		Category3Logistic,
	}
)

// NormalizeCategoryToken turns free text from a spreadsheet cell into the
// canonical token form used by the category lookup tables: trimmed, upper
// case, dashes and ampersands replaced, parentheses dropped, spaces as
// underscores.
func NormalizeCategoryToken(raw string) string {
	replacer := strings.NewReplacer(
		"-", "_",
		"&", "AND",
		"(", "",
		")", "",
	)
	token := replacer.Replace(raw)
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(token), " ", "_"))
}

func containsCategory[T comparable](list []T, value T) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
