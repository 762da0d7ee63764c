package model

// Scripture is a verse shown in the daily scripture banner.
type Scripture struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

// Scriptures is the fixed rotation of daily verses.
var Scriptures = []Scripture{
	{
		Text:      `"Trust in the LORD with all your heart and lean not on your own understanding." - Proverbs 3:5`,
		Reference: "Proverbs 3:5",
	},
	{
		Text:      `"For God so loved the world that he gave his one and only Son, that whoever believes in him shall not perish but have eternal life." - John 3:16`,
		Reference: "John 3:16",
	},
	{
		Text:      `"I can do all things through Christ who strengthens me." - Philippians 4:13`,
		Reference: "Philippians 4:13",
	},
	{
		Text:      `"The Lord is my light and my salvation—whom shall I fear?" - Psalm 27:1`,
		Reference: "Psalm 27:1",
	},
}

// ScriptureForDay returns the verse for a day of the month (1-31).
func ScriptureForDay(dayOfMonth int) Scripture {
	n := len(Scriptures)
	return Scriptures[((dayOfMonth%n)+n)%n]
}
