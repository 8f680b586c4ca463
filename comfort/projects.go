package comfort

type ProjectStatus string

const (
	ProjectOngoing   ProjectStatus = "Ongoing"
	ProjectCompleted ProjectStatus = "Completed"
)

type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Date        string        `json:"date"`
	EndDate     string        `json:"end_date,omitempty"`
	Status      ProjectStatus `json:"status"`
	Goal        int64         `json:"goal"`
	Raised      int64         `json:"raised"`
}
