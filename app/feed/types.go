package feed

// Item is a single entry pulled from the upstream listing.
// Empty strings mean the attribute is absent.
type Item struct {
	ID    string // stable identifier, used as the dedup key
	Title string
	Link  string // locator of the full resource
}

// Keywords is the inclusion/exclusion policy applied to titles.
// A nil Undesired means no exclusion list was configured at all.
type Keywords struct {
	Desired   []string `yaml:"desired"`
	Undesired []string `yaml:"undesired"`
}

type OutcomeKind int

const (
	NoMatch OutcomeKind = iota
	Accepted
	RejectedByUndesired
)

func (k OutcomeKind) String() string {
	switch k {
	case Accepted:
		return "accepted"
	case RejectedByUndesired:
		return "rejected_by_undesired"
	default:
		return "no_match"
	}
}

// Outcome is the result of matching a title against Keywords.
// Keyword holds the list entry that decided the outcome, if any.
type Outcome struct {
	Kind    OutcomeKind
	Keyword string
}
