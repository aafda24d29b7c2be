package enhance

// Key strings emitted by the Stanbol enhancer. They are matched verbatim.
const (
	KeyID       = "@id"
	KeyType     = "@type"
	KeyValue    = "@value"
	KeyLanguage = "@language"
	KeyFulltext = "fulltext"

	KeyDepiction = "http://xmlns.com/foaf/0.1/depiction"
	KeyComment   = "http://www.w3.org/2000/01/rdf-schema#comment"
	KeyLabel     = "http://www.w3.org/2000/01/rdf-schema#label"
	KeyLatitude  = "http://www.w3.org/2003/01/geo/wgs84_pos#lat"
	KeyLongitude = "http://www.w3.org/2003/01/geo/wgs84_pos#long"

	KeyConfidence       = "http://fise.iks-project.eu/ontology/confidence"
	KeyEntityReference  = "http://fise.iks-project.eu/ontology/entity-reference"
	KeyEntityLabel      = "http://fise.iks-project.eu/ontology/entity-label"
	KeyEntityType       = "http://fise.iks-project.eu/ontology/entity-type"
	KeyRelation         = "http://purl.org/dc/terms/relation"
	KeySelectedText     = "http://fise.iks-project.eu/ontology/selected-text"
	KeySelectionContext = "http://fise.iks-project.eu/ontology/selection-context"
	KeyStart            = "http://fise.iks-project.eu/ontology/start"
	KeyEnd              = "http://fise.iks-project.eu/ontology/end"
)

// Type tags of enhancement records.
const (
	TypeEnhancement      = "http://fise.iks-project.eu/ontology/Enhancement"
	TypeTextAnnotation   = "http://fise.iks-project.eu/ontology/TextAnnotation"
	TypeEntityAnnotation = "http://fise.iks-project.eu/ontology/EntityAnnotation"
)

// LabelLanguage is the only label language kept on entities.
const LabelLanguage = "en"
