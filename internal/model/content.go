package model

// ProgramInfo describes the show currently on air.
type ProgramInfo struct {
	ShowName    string `json:"show_name"`
	Presenter   string `json:"presenter"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
	SongName    string `json:"song_name"`
}

// Sermon is a recorded sermon. Media links are served elsewhere.
type Sermon struct {
	Title    string `json:"title"`
	Preacher string `json:"preacher"`
	Date     string `json:"date"`
}

// Testimony is a listener testimony. The API only returns approved ones
// when asked with approved=1.
type Testimony struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	Approved bool   `json:"approved,omitempty"`
}

// NewsItem is a station news post. Excerpt is optional.
type NewsItem struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Excerpt string `json:"excerpt,omitempty"`
	Content string `json:"content"`
}

// ScheduleItem is one slot of a day's programme schedule.
type ScheduleItem struct {
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	ShowName      string `json:"show_name"`
	PresenterName string `json:"presenter_name"`
}
