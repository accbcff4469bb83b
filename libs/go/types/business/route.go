package business

// RouteStatus is the lifecycle state of a hunt route. Transitions only move
// forward: pending, then active, then completed.
type RouteStatus string

const (
	RouteStatusPending   RouteStatus = "pending"
	RouteStatusActive    RouteStatus = "active"
	RouteStatusCompleted RouteStatus = "completed"
)

// StatusFilterAll matches every status in the derived read model
const StatusFilterAll = "all"

// IsValid reports whether s is one of the known statuses
func (s RouteStatus) IsValid() bool {
	switch s {
	case RouteStatusPending, RouteStatusActive, RouteStatusCompleted:
		return true
	default:
		return false
	}
}

// Rank orders statuses along the lifecycle. Unknown statuses rank -1.
func (s RouteStatus) Rank() int {
	switch s {
	case RouteStatusPending:
		return 0
	case RouteStatusActive:
		return 1
	case RouteStatusCompleted:
		return 2
	default:
		return -1
	}
}

// EncryptedData is opaque cipher text. The service never interprets it.
type EncryptedData string

// Route is one scavenger-hunt instance as persisted on the ledger under
// "route_{id}". The id is not part of the stored JSON; it is the key suffix.
type Route struct {
	ID            string        `json:"-"`
	EncryptedData EncryptedData `json:"data"`
	Timestamp     int64         `json:"timestamp"`
	Owner         string        `json:"owner"`
	AgeGroup      string        `json:"ageGroup"`
	Interests     []string      `json:"interests"`
	Status        RouteStatus   `json:"status"`
}

// Age groups offered by the create form
const (
	AgeGroupChildren = "Children (5-12)"
	AgeGroupTeens    = "Teens (13-19)"
	AgeGroupAdults   = "Adults (20+)"
	AgeGroupSeniors  = "Seniors (65+)"
)

// AgeGroups lists the age groups in display order
var AgeGroups = []string{
	AgeGroupChildren,
	AgeGroupTeens,
	AgeGroupAdults,
	AgeGroupSeniors,
}

// InterestCatalog lists the interest tags in display order
var InterestCatalog = []string{
	"Ancient History",
	"Modern Art",
	"Science",
	"Technology",
	"Sculpture",
	"Painting",
	"Archaeology",
	"Natural History",
}

// StatusFilters lists the values accepted by the status filter
var StatusFilters = []string{
	StatusFilterAll,
	string(RouteStatusPending),
	string(RouteStatusActive),
	string(RouteStatusCompleted),
}

// RouteStats summarises a snapshot by status
type RouteStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}
