package curriculum

// Topic is a syllabus concept.
type Topic struct {
	ID         string `json:"id"`
	Chapter    int    `json:"chapter"`
	Difficulty int    `json:"difficulty"`
	Desc       string `json:"desc"`
}

// Relationship links two topics. The concept graph treats it as undirected.
type Relationship struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Composition limits how many concepts a question combines at each level.
type Composition struct {
	MaxConcepts map[string]int `json:"max_concepts"`
	MaxHops     map[string]int `json:"max_hops"`
}

// Syllabus is the knowledge graph document.
type Syllabus struct {
	Version       string         `json:"version"`
	Topics        []Topic        `json:"topics"`
	Relationships []Relationship `json:"relationships"`
	Composition   Composition    `json:"composition_rules"`
}

// Strategy describes how a trap steers code and question generation.
type Strategy struct {
	Instruction     string   `json:"instruction"`
	QuestionIntent  string   `json:"question_intent"`
	DistractorLogic []string `json:"distractor_logic"`
}

// Trigger is the code shape a trap relies on.
type Trigger struct {
	CodePattern string `json:"code_pattern"`
}

// Trap is a misconception-targeting strategy keyed by concept.
type Trap struct {
	ID                string   `json:"id"`
	Concept           string   `json:"concept"`
	RelatedConceptIDs []string `json:"related_concept_ids"`
	Strategy          Strategy `json:"strategy"`
	Trigger           Trigger  `json:"trigger"`
}

// TrapSet is the traps document.
type TrapSet struct {
	Version string `json:"version"`
	Traps   []Trap `json:"traps"`
}

// RuleFunction is a reference snippet with its known costs.
type RuleFunction struct {
	ID      string `json:"id"`
	Snippet string `json:"snippet"`
	Time    string `json:"time"`
	Space   string `json:"space"`
}

// Rule lists the operations a concept introduces and the first chapter in
// which they may appear.
type Rule struct {
	Concept         string         `json:"concept"`
	ForbiddenBefore int            `json:"forbidden_before"`
	Functions       []RuleFunction `json:"functions"`
}

// RuleSet is the operational rules document.
type RuleSet struct {
	Version string `json:"version"`
	Rules   []Rule `json:"rules"`
}
