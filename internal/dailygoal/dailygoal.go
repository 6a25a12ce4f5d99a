package dailygoal

// DailyGoal is the single system-issued goal for one calendar day. The slot
// is keyed by Date; once the stored date no longer matches today it is
// superseded by a fresh draw, completed or not.
type DailyGoal struct {
	Date      string  `json:"date"`
	Goal      string  `json:"goal"`
	Completed bool    `json:"completed"`
	Progress  float64 `json:"progress"`
}

// CompletedRecord is one append-only history entry, created when a daily goal
// completes. It outlives the slot that produced it and is deletable on its own.
type CompletedRecord struct {
	ID            int64  `json:"id"`
	Goal          string `json:"goal"`
	CompletedDate string `json:"completedDate"`
	Timestamp     int64  `json:"timestamp"`
}

// Reward is the fixed point value every completed daily goal contributes.
const Reward = 20

// Catalog of goals the rotator draws from.
var Catalog = []string{
	"Go for a 20 minute walk",
	"Cook a new healthy meal",
	"Go to the gym",
	"Drink 7-8 glasses of water",
	"Read for 30 minutes",
	"Meditate for 5 minutes",
	"Practice self care",
	"Go to sleep by 10 PM",
	"Reduce unecessary screen time",
	"Stretch for 10 minutes",
}

type EditProgressRequest struct {
	Percent *float64 `json:"percent"`
}

type DeleteRecordResponse struct {
	Deleted        bool `json:"deleted"`
	RefundedReward int  `json:"refundedReward"`
}
