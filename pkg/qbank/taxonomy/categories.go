package taxonomy

// Category axes for leaf groups. Axis 1 and 2 are used by both matrix
// shapes, axis 3 and 4 only by Matrix 2D. Codes are stable and stored in
// the DB, labels are what XLSForm files and the UI show.

type Category1 int

const (
	// Matrix 1D (rows)
	Category1Context                     Category1 = 101
	Category1EventAndShock               Category1 = 102
	Category1Displacement                Category1 = 103
	Category1Casualties                  Category1 = 104
	Category1InformationAndCommunication Category1 = 105
	Category1HumanitarianAccess          Category1 = 106
	Category1Introduction                Category1 = 107
	Category1Conclusion                  Category1 = 108

	// Matrix 2D (rows) - pillar
	Category1Impact                 Category1 = 201
	Category1HumanitarianCondition  Category1 = 202
	Category1AtRisk                 Category1 = 203
	Category1PriorityNeeds          Category1 = 204
	Category1PriorityInterventions  Category1 = 205
	Category1CapacitiesAndResponse  Category1 = 206
)

type Category2 int

const (
	// Matrix 1D (sub-rows)
	// -- Context
	Category2Politics             Category2 = 10001
	Category2Economics            Category2 = 10002
	Category2Environment          Category2 = 10003
	Category2SocioCultural        Category2 = 10004
	Category2Demographic          Category2 = 10005
	Category2SecurityAndStability Category2 = 10006
	// -- Event and shock
	Category2TypeAndCharacteristics Category2 = 10101
	Category2AggravatingFactors     Category2 = 10102
	Category2MitigatingFactors      Category2 = 10103
	Category2HazardsAndThreats      Category2 = 10104
	// -- Displacement
	Category2DisplacementCharacteristics Category2 = 10201
	Category2PullFactors                 Category2 = 10202
	Category2PushFactors                 Category2 = 10203
	Category2Intentions                  Category2 = 10204
	Category2LocalIntegration            Category2 = 10205
	// -- Casualties
	Category2Dead    Category2 = 10301
	Category2Injured Category2 = 10302
	Category2Missing Category2 = 10303
	// -- Information and communication
	Category2CommunicationSourcesAndMeans     Category2 = 10401
	Category2InformationChallengesAndBarriers Category2 = 10402
	Category2KnowledgeAndInfoGapsPop          Category2 = 10403
	Category2KnowledgeAndInfoGapsHum          Category2 = 10404
	// -- Humanitarian access
	Category2PopulationToRelief   Category2 = 10501
	Category2ReliefToPopulation   Category2 = 10502
	Category2PhysicalConstraints  Category2 = 10503
	Category2SecurityConstraints  Category2 = 10504
	Category2PeopleFacingAccessConstraints Category2 = 10505
	// -- Introduction
	Category2Introduction                  Category2 = 10601
	Category2QuestionnaireCharacteristics  Category2 = 10602
	Category2EnumeratorCharacteristics     Category2 = 10603
	Category2RespondentCharacteristics     Category2 = 10604
	Category2AreaCharacteristics           Category2 = 10605
	Category2AffectedGroupCharacteristics  Category2 = 10606
	// -- Conclusion
	Category2Cross Category2 = 10701

	// Matrix 2D (sub-rows) - sub-pillar
	// -- Impact
	Category2Drivers                            Category2 = 20001
	Category2ImpactOnPeople                     Category2 = 20002
	Category2ImpactOnSystemsServicesAndNetworks Category2 = 20003
	Category2NumberOfPeopleAffected             Category2 = 20004
	// -- Humanitarian condition
	Category2LivingStandards             Category2 = 20101
	Category2CopingMechanisms            Category2 = 20102
	Category2PhysicalAndMentalWellBeing  Category2 = 20103
	Category2NumberOfPeopleInNeed        Category2 = 20104
	// -- At risk
	Category2PeopleAtRisk         Category2 = 20201
	Category2NumberOfPeopleAtRisk Category2 = 20202
	// -- Priority needs / Priority interventions
	Category2ExpressedByPopulation        Category2 = 20301
	Category2ExpressedByHumanitarianStaff Category2 = 20302
	// -- Capacities and response
	Category2GovernmentAndLocalAuthorities  Category2 = 20501
	Category2InternationalOrganizations     Category2 = 20502
	Category2NationalAndLocalOrganizations  Category2 = 20503
	Category2RedCrossRedCrescent            Category2 = 20504
	Category2HumanitarianCoordination       Category2 = 20505
	Category2PeopleReachedAndResponseGaps   Category2 = 20506
)

type Category3 int

const (
	// Matrix 2D (columns) - sector
	Category3Cross        Category3 = 1000
	Category3Health       Category3 = 1001
	Category3WASH         Category3 = 1002
	Category3Shelter      Category3 = 1003
	Category3FoodSecurity Category3 = 1004
	Category3Livelihoods  Category3 = 1005
	Category3Nutrition    Category3 = 1006
	Category3Education    Category3 = 1007
	Category3Protection   Category3 = 1008
	Category3Agriculture  Category3 = 1009
	Category3Logistic     Category3 = 1010
)

type Category4 int

const (
	// Matrix 2D (sub-columns) - sub-sector
	// -- Cross
	Category4Cross Category4 = 10001
	// -- Health
	Category4HealthCare   Category4 = 10101
	Category4HealthStatus Category4 = 10102
	// -- WASH
	Category4WaterSupply                  Category4 = 10201
	Category4ExcretaManagementSanitation  Category4 = 10202
	Category4SolidWasteManagement         Category4 = 10203
	Category4HygieneFacilitiesAndProducts Category4 = 10204
	Category4WASHInSchools                Category4 = 10205
	Category4WASHInHealthCareFacilities   Category4 = 10206
	Category4VectorControl                Category4 = 10207
	// -- Shelter
	Category4DwellingEnvelope        Category4 = 10301
	Category4DomesticLivingSpace     Category4 = 10302
	Category4NonFoodHouseholdItems   Category4 = 10303
	Category4HousingLandAndProperty  Category4 = 10304
	Category4Settlement              Category4 = 10305
	// -- Food security
	Category4Food         Category4 = 10401
	Category4NonFoodItems Category4 = 10402
	// -- Livelihoods
	Category4NaturalCapital   Category4 = 10501
	Category4HumanCapital     Category4 = 10502
	Category4SocialCapital    Category4 = 10503
	Category4PhysicalCapital  Category4 = 10504
	Category4FinancialCapital Category4 = 10505
	Category4Occupation       Category4 = 10506
	// -- Nutrition
	Category4NutritionStatus   Category4 = 10601
	Category4NutritionServices Category4 = 10602
	// -- Education
	Category4Provision                          Category4 = 10701
	Category4LearningEnvironment                Category4 = 10702
	Category4TeachingAndLearning                Category4 = 10703
	Category4TeachersAndOtherEducationPersonnel Category4 = 10704
	Category4EducationPolicy                    Category4 = 10705
	// -- Protection
	Category4Documentation                 Category4 = 10801
	Category4HumanCivilAndPoliticalRights  Category4 = 10802
	Category4JusticeAndRuleOfLaw           Category4 = 10803
	Category4PhysicalSafetyAndSecurity     Category4 = 10804
	Category4FreedomOfMovement             Category4 = 10805
	Category4ChildProtection               Category4 = 10806
	Category4SexualAndGenderBasedViolence  Category4 = 10807
	Category4MinesUXOsAndIEDs              Category4 = 10809
	// -- Agriculture
	Category4Production                 Category4 = 10901
	Category4AgriculturalInputs         Category4 = 10902
	Category4AgriculturalInfrastructure Category4 = 10903
	Category4NaturalResourceManagement  Category4 = 10904
	// -- Logistic
	Category4Transport Category4 = 11001
	Category4ICT       Category4 = 11002
	Category4Energy    Category4 = 11003
)

type categoryEntry[T ~int] struct {
	value T
	name  string
	label string
}

// Catalogue tables: enum value, stable identifier name and display label.
// Identifier names exist separately from labels because a handful of
// labels do not normalize cleanly back to their identifier (slashes,
// commas, shorthand like HLP).
var category1Catalog = []categoryEntry[Category1]{
	{Category1Context, "CONTEXT", "Context"},
	{Category1EventAndShock, "EVENT_AND_SHOCK", "Event and shock"},
	{Category1Displacement, "DISPLACEMENT", "Displacement"},
	{Category1Casualties, "CASUALTIES", "Casualties"},
	{Category1InformationAndCommunication, "INFORMATION_AND_COMMUNICATION", "Information and communication"},
	{Category1HumanitarianAccess, "HUMANITARIAN_ACCESS", "Humanitarian access"},
	{Category1Introduction, "INTRODUCTION", "Introduction"},
	{Category1Conclusion, "CONCLUSION", "Conclusion"},
	{Category1Impact, "IMPACT", "Impact"},
	{Category1HumanitarianCondition, "HUMANITARIAN_CONDITION", "Humanitarian condition"},
	{Category1AtRisk, "AT_RISK", "At Risk"},
	{Category1PriorityNeeds, "PRIORITY_NEEDS", "Priority needs"},
	{Category1PriorityInterventions, "PRIORITY_INTERVENTIONS", "Priority Interventions"},
	{Category1CapacitiesAndResponse, "CAPACITIES_AND_RESPONSE", "Capacities and response"},
}

var category2Catalog = []categoryEntry[Category2]{
	{Category2Politics, "POLITICS", "Politics"},
	{Category2Economics, "ECONOMICS", "Economics"},
	{Category2Environment, "ENVIRONMENT", "Environment"},
	{Category2SocioCultural, "SOCIO_CULTURAL", "Socio-cultural"},
	{Category2Demographic, "DEMOGRAPHIC", "Demographic"},
	{Category2SecurityAndStability, "SECURITY_AND_STABILITY", "Security and stability"},
	{Category2TypeAndCharacteristics, "TYPE_AND_CHARACTERISTICS", "Type and characteristics"},
	{Category2AggravatingFactors, "AGGRAVATING_FACTORS", "Aggravating factors"},
	{Category2MitigatingFactors, "MITIGATING_FACTORS", "Mitigating factors"},
	{Category2HazardsAndThreats, "HAZARDS_AND_THREATS", "Hazards & threats"},
	{Category2DisplacementCharacteristics, "DISPLACEMENT_CHARACTERISTICS", "Displacement characteristics"},
	{Category2PullFactors, "PULL_FACTORS", "Pull factors"},
	{Category2PushFactors, "PUSH_FACTORS", "Push factors"},
	{Category2Intentions, "INTENTIONS", "Intentions"},
	{Category2LocalIntegration, "LOCAL_INTEGRATION", "Local integration"},
	{Category2Dead, "DEAD", "Dead"},
	{Category2Injured, "INJURED", "Injured"},
	{Category2Missing, "MISSING", "Missing"},
	{Category2CommunicationSourcesAndMeans, "COMMUNICATION_SOURCES_AND_MEANS", "Communication sources and means"},
	{Category2InformationChallengesAndBarriers, "INFORMATION_CHALLENGES_AND_BARRIERS", "Information challenges and barriers"},
	{Category2KnowledgeAndInfoGapsPop, "KNOWLEDGE_AND_INFO_GAPS_POP", "Knowledge and info gaps (Pop)"},
	{Category2KnowledgeAndInfoGapsHum, "KNOWLEDGE_AND_INFO_GAPS_HUM", "Knowledge and info gaps (Hum)"},
	{Category2PopulationToRelief, "POPULATION_TO_RELIEF", "Population to relief"},
	{Category2ReliefToPopulation, "RELIEF_TO_POPULATION", "Relief to population"},
	{Category2PhysicalConstraints, "PHYSICAL_CONSTRAINTS", "Physical constraints"},
	{Category2SecurityConstraints, "SECURITY_CONSTRAINTS", "Security constraints"},
	{Category2PeopleFacingAccessConstraints, "PEOPLE_FACING_HUMANITARIAN_ACCESS_CONSTRAINT_HUMANITARIAN_ACCESS_GAPS", "People facing humanitarian access constraints/Humanitarian access gaps"},
	{Category2Introduction, "INTRODUCTION", "Introduction"},
	{Category2QuestionnaireCharacteristics, "QUESTIONNAIRE_CHARACTERISTICS", "Questionnaire characteristics"},
	{Category2EnumeratorCharacteristics, "ENUMERATOR_CHARACTERISTICS", "Enumerator characteristics"},
	{Category2RespondentCharacteristics, "RESPONDENT_CHARACTERISTICS", "Respondent characteristics"},
	{Category2AreaCharacteristics, "AREA_CHARACTERISTICS", "Area characteristics"},
	{Category2AffectedGroupCharacteristics, "AFFECTED_GROUP_CHARACTERISTICS", "Affected group characteristics"},
	{Category2Cross, "CROSS", "Cross"},
	{Category2Drivers, "DRIVERS", "Drivers"},
	{Category2ImpactOnPeople, "IMPACT_ON_PEOPLE", "Impact on people"},
	{Category2ImpactOnSystemsServicesAndNetworks, "IMPACT_ON_SYSTEMS_SERVICES_AND_NETWORKS", "Impact on systems, services and networks"},
	{Category2NumberOfPeopleAffected, "NUMBER_OF_PEOPLE_AFFECTED", "Number of people affected"},
	{Category2LivingStandards, "LIVING_STANDARDS", "Living standards"},
	{Category2CopingMechanisms, "COPING_MECHANISMS", "Coping mechanisms"},
	{Category2PhysicalAndMentalWellBeing, "PHYSICAL_AND_MENTAL_WELL_BEING", "Physical and mental well being"},
	{Category2NumberOfPeopleInNeed, "NUMBER_OF_PEOPLE_IN_NEED", "Number of people in need"},
	{Category2PeopleAtRisk, "PEOPLE_AT_RISK", "People at risk"},
	{Category2NumberOfPeopleAtRisk, "NUMBER_OF_PEOPLE_AT_RISK", "Number of people at risk"},
	{Category2ExpressedByPopulation, "EXPRESSED_BY_POPULATION", "Expressed by population"},
	{Category2ExpressedByHumanitarianStaff, "EXPRESSED_BY_HUMANITARIAN_STAFF", "Expressed by humanitarian staff"},
	{Category2GovernmentAndLocalAuthorities, "GOVERNMENT_AND_LOCAL_AUTHORITIES", "Government and local authorities"},
	{Category2InternationalOrganizations, "INTERNATIONAL_ORGANIZATIONS", "International organizations"},
	{Category2NationalAndLocalOrganizations, "NATIONAL_AND_LOCAL_ORGANIZATIONS", "National and local organizations"},
	{Category2RedCrossRedCrescent, "RED_CROSS_RED_CRESCENT", "Red cross Red Crescent"},
	{Category2HumanitarianCoordination, "HUMANITARIAN_COORDINATION", "Humanitarian coordination"},
	{Category2PeopleReachedAndResponseGaps, "PEOPLE_REACHED_AND_RESPONSE_GAPS", "People reached and response gaps"},
}

var category3Catalog = []categoryEntry[Category3]{
	{Category3Cross, "CROSS", "Cross"},
	{Category3Health, "HEALTH", "Health"},
	{Category3WASH, "WASH", "WASH"},
	{Category3Shelter, "SHELTER", "Shelter"},
	{Category3FoodSecurity, "FOOD_SECURITY", "Food security"},
	{Category3Livelihoods, "LIVELIHOODS", "Livelihoods"},
	{Category3Nutrition, "NUTRITION", "Nutrition"},
	{Category3Education, "EDUCATION", "Education"},
	{Category3Protection, "PROTECTION", "Protection"},
	{Category3Agriculture, "AGRICULTURE", "Agriculture"},
	{Category3Logistic, "LOGISTIC", "Logistic"},
}

var category4Catalog = []categoryEntry[Category4]{
	{Category4Cross, "CROSS", "Cross"},
	{Category4HealthCare, "HEALTH_CARE", "Health care"},
	{Category4HealthStatus, "HEALTH_STATUS", "Health status"},
	{Category4WaterSupply, "WATER_SUPPLY", "Water supply"},
	{Category4ExcretaManagementSanitation, "EXCRETA_MANAGEMENT_SANITATION", "Excreta management /sanitation"},
	{Category4SolidWasteManagement, "SOLID_WASTE_MANAGEMENT", "Solid waste management"},
	{Category4HygieneFacilitiesAndProducts, "HYGIENE_FACILITIES_AND_PRODUCTS", "Hygiene facilities and products"},
	{Category4WASHInSchools, "WASH_IN_SCHOOLS", "WASH in schools"},
	{Category4WASHInHealthCareFacilities, "WASH_IN_HEALTH_CARE_FACILITIES", "WASH in health care facilities"},
	{Category4VectorControl, "VECTOR_CONTROL", "Vector control"},
	{Category4DwellingEnvelope, "DWELLING_ENVELOPE", "Dwelling envelope"},
	{Category4DomesticLivingSpace, "DOMESTIC_LIVING_SPACE", "Domestic living space"},
	{Category4NonFoodHouseholdItems, "NON_FOOD_HOUSEHOLD_ITEMS", "Non-food household items"},
	{Category4HousingLandAndProperty, "HOUSING_LAND_AND_PROPERTY_HLP", "Housing, Land and Property (HLP)"},
	{Category4Settlement, "SETTLEMENT", "Settlement"},
	{Category4Food, "FOOD", "Food"},
	{Category4NonFoodItems, "NON_FOOD_ITEMS", "Non Food Items"},
	{Category4NaturalCapital, "NATURAL_CAPITAL", "Natural capital"},
	{Category4HumanCapital, "HUMAN_CAPITAL", "Human capital"},
	{Category4SocialCapital, "SOCIAL_CAPITAL", "Social capital"},
	{Category4PhysicalCapital, "PHYSICAL_CAPITAL", "Physical capital"},
	{Category4FinancialCapital, "FINANCIAL_CAPITAL", "Financial capital"},
	{Category4Occupation, "OCCUPATION", "Occupation"},
	{Category4NutritionStatus, "NUTRITION_STATUS", "Nutrition status"},
	{Category4NutritionServices, "NUTRITION_SERVICES", "Nutrition services"},
	{Category4Provision, "PROVISION", "Provision"},
	{Category4LearningEnvironment, "LEARNING_ENVIRONMENT", "Learning environment"},
	{Category4TeachingAndLearning, "TEACHING_AND_LEARNING", "Teaching and learning"},
	{Category4TeachersAndOtherEducationPersonnel, "TEACHERS_AND_OTHER_EDUCATION_PERSONNEL", "Teachers and other education personnel"},
	{Category4EducationPolicy, "EDUCATION_POLICY", "Education policy"},
	{Category4Documentation, "DOCUMENTATION", "Documentation"},
	{Category4HumanCivilAndPoliticalRights, "HUMAN_CIVIL_AND_POLITICAL_RIGHTS", "Human, civil and political rights"},
	{Category4JusticeAndRuleOfLaw, "JUSTICE_AND_RULE_OF_LAW", "Justice and rule of law"},
	{Category4PhysicalSafetyAndSecurity, "PHYSICAL_SAFETY_AND_SECURITY", "Physical safety and security"},
	{Category4FreedomOfMovement, "FREEDOM_OF_MOVEMENT", "Freedom of movement"},
	{Category4ChildProtection, "CHILD_PROTECTION", "Child Protection"},
	{Category4SexualAndGenderBasedViolence, "SEXUAL_AND_GENDER_BASED_VIOLENCE", "Sexual and Gender-Based Violence"},
	{Category4MinesUXOsAndIEDs, "MINES_UXOS_AND_IEDS", "Mines, UXOS and IEDs"},
	{Category4Production, "PRODUCTION", "Production"},
	{Category4AgriculturalInputs, "AGRICULTURAL_INPUTS", "Agricultural inputs"},
	{Category4AgriculturalInfrastructure, "AGRICULTURAL_INFRASTRUCTURE", "Agricultural infrastructure"},
	{Category4NaturalResourceManagement, "NATURAL_RESOURCE_MANAGEMENT", "Natural resource management"},
	{Category4Transport, "TRANSPORT", "Transport"},
	{Category4ICT, "INFORMATION_AND_COMMUNICATION_TECHNOLOGIES_ICT", "Information and communication technologies (ICT)"},
	{Category4Energy, "ENERGY", "Energy"},
}

type categoryIndex[T ~int] struct {
	labels  map[T]string
	names   map[T]string
	byToken map[string]T
}

func buildCategoryIndex[T ~int](catalog []categoryEntry[T]) categoryIndex[T] {
	idx := categoryIndex[T]{
		labels:  make(map[T]string, len(catalog)),
		names:   make(map[T]string, len(catalog)),
		byToken: make(map[string]T, len(catalog)*2),
	}
	for _, entry := range catalog {
		idx.labels[entry.value] = entry.label
		idx.names[entry.value] = entry.name
		// identifier name first, normalized label may override with the
		// same value anyway
		idx.byToken[entry.name] = entry.value
		idx.byToken[NormalizeCategoryToken(entry.label)] = entry.value
	}
	return idx
}

var (
	category1Index = buildCategoryIndex(category1Catalog)
	category2Index = buildCategoryIndex(category2Catalog)
	category3Index = buildCategoryIndex(category3Catalog)
	category4Index = buildCategoryIndex(category4Catalog)
)

func (c Category1) Label() string  { return category1Index.labels[c] }
func (c Category2) Label() string  { return category2Index.labels[c] }
func (c Category3) Label() string  { return category3Index.labels[c] }
func (c Category4) Label() string  { return category4Index.labels[c] }
func (c Category1) String() string { return category1Index.names[c] }
func (c Category2) String() string { return category2Index.names[c] }
func (c Category3) String() string { return category3Index.names[c] }
func (c Category4) String() string { return category4Index.names[c] }

// Category lookups by normalized token, used by the XLSForm importer to
// resolve free text cell values. The token must already be normalized
// with NormalizeCategoryToken.

func Category1FromToken(token string) (Category1, bool) {
	c, ok := category1Index.byToken[token]
	return c, ok
}

func Category2FromToken(token string) (Category2, bool) {
	c, ok := category2Index.byToken[token]
	return c, ok
}

func Category3FromToken(token string) (Category3, bool) {
	c, ok := category3Index.byToken[token]
	return c, ok
}

func Category4FromToken(token string) (Category4, bool) {
	c, ok := category4Index.byToken[token]
	return c, ok
}
