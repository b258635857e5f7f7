package metadata

// ImageKeyword classifies an illustration attached to a software record.
type ImageKeyword string

const (
	KeywordLogo              ImageKeyword = "logo"
	KeywordIllustrativeImage ImageKeyword = "illustrative image"
	KeywordBeforeImage       ImageKeyword = "before image"
	KeywordAfterImage        ImageKeyword = "after image"
	KeywordAnimatedImage     ImageKeyword = "animated image"
)

// RepositoryType is the coarse classification of a source repository.
type RepositoryType string

const (
	RepositorySoftware            RepositoryType = "software"
	RepositoryEducationalResource RepositoryType = "educational resource"
	RepositoryDocumentation       RepositoryType = "documentation"
	RepositoryData                RepositoryType = "data"
	RepositoryOther               RepositoryType = "other"
)

// Discipline is a research-discipline classification assigned to a record,
// drawn from a fixed taxonomy.
type Discipline string

const (
	SocialSciences          Discipline = "Social sciences"
	Anthropology            Discipline = "Anthropology"
	CommunicationStudies    Discipline = "Communication studies"
	Education               Discipline = "Education"
	Linguistics             Discipline = "Linguistics"
	Research                Discipline = "Research"
	Sociology               Discipline = "Sociology"
	Geography               Discipline = "Geography"
	Psychology              Discipline = "Psychology"
	Politics                Discipline = "Politics"
	Economics               Discipline = "Economics"
	AppliedSciences         Discipline = "Applied sciences"
	HealthSciences          Discipline = "Health sciences"
	ElectricalEngineering   Discipline = "Electrical engineering"
	ChemicalEngineering     Discipline = "Chemical engineering"
	CivilEngineering        Discipline = "Civil engineering"
	Architecture            Discipline = "Architecture"
	ComputerEngineering     Discipline = "Computer engineering"
	EnergyEngineering       Discipline = "Energy engineering"
	MilitaryScience         Discipline = "Military science"
	IndustrialEngineering   Discipline = "Industrial and production engineering"
	MechanicalEngineering   Discipline = "Mechanical engineering"
	BiologicalEngineering   Discipline = "Biological engineering"
	EnvironmentalScience    Discipline = "Environmental science"
	SystemsScience          Discipline = "Systems science and engineering"
	InformationEngineering  Discipline = "Information engineering"
	AgriculturalSciences    Discipline = "Agricultural and food sciences"
	Business                Discipline = "Business"
	Humanities              Discipline = "Humanities"
	History                 Discipline = "History"
	Literature              Discipline = "Literature"
	Art                     Discipline = "Art"
	Religion                Discipline = "Religion"
	Philosophy              Discipline = "Philosophy"
	Law                     Discipline = "Law"
	FormalSciences          Discipline = "Formal sciences"
	Mathematics             Discipline = "Mathematics"
	Logic                   Discipline = "Logic"
	Statistics              Discipline = "Statistics"
	TheoreticalCompSci      Discipline = "Theoretical computer science"
	NaturalSciences         Discipline = "Natural sciences"
	Physics                 Discipline = "Physics"
	Astronomy               Discipline = "Astronomy"
	Biology                 Discipline = "Biology"
	Chemistry               Discipline = "Chemistry"
	EarthScience            Discipline = "Earth science"
)
