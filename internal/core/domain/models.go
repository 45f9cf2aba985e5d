package domain

import "time"

// TaskStatus is the final state of a scrape task.
type TaskStatus string

const (
	StatusSuccess TaskStatus = "success"
	StatusFailed  TaskStatus = "failed"
)

// Review is a single extracted review. Field order matches the CSV column
// order written by the sink.
type Review struct {
	ID            string `json:"id_review"`
	Caption       string `json:"caption"`
	MoreCaption   string `json:"more_caption"`
	RelativeDate  string `json:"relative_date"`
	RetrievalDate string `json:"retrieval_date"`
	Rating        string `json:"rating"`
	Username      string `json:"username"`
	NumReviews    string `json:"n_review_user"`
	NumPhotos     string `json:"n_photo_user"`
	ProfileURL    string `json:"url_user"`
}

// Fields returns the review values in CSV column order.
func (r Review) Fields() []string {
	return []string{
		r.ID, r.Caption, r.MoreCaption, r.RelativeDate, r.RetrievalDate,
		r.Rating, r.Username, r.NumReviews, r.NumPhotos, r.ProfileURL,
	}
}

// Task is one unit of work: a target URL and the number of reviews to pull.
type Task struct {
	TargetURL   string
	ReviewLimit int
}

// TaskResult holds the outcome of one completed task.
type TaskResult struct {
	TargetURL      string     `json:"url"`
	ReviewsScraped int        `json:"reviews_scraped"`
	Status         TaskStatus `json:"status"`
	Error          string     `json:"error,omitempty"`
	OutputFile     string     `json:"output_file,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     time.Time  `json:"finished_at"`
}

// Duration is the wall-clock time the task took.
func (r TaskResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunStatistics aggregates task outcomes over one scraping run.
type RunStatistics struct {
	RunID         string    `json:"run_id"`
	TotalURLs     int       `json:"total_urls"`
	CompletedURLs int       `json:"completed_urls"`
	FailedURLs    int       `json:"failed_urls"`
	TotalReviews  int       `json:"total_reviews"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}
