// Package samples holds the fixed catalog of example texts offered for analysis.
package samples

import (
	"fmt"

	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/utils"
)

// PreviewLength is the number of runes shown when listing a sample
const PreviewLength = 80

var catalog = []core.Sample{
	{
		ID:    1,
		Type:  core.SampleSpam,
		Title: "Prize Winner Scam",
		Text:  "WINNER!! Congratulations! You have been selected to receive a $1000 Walmart gift card. Click here now to claim your prize: http://fake-link.com. This offer expires in 24 hours! Act fast!",
	},
	{
		ID:    2,
		Type:  core.SampleSpam,
		Title: "Phishing Attack",
		Text:  "URGENT: Your bank account has been compromised! Click this link immediately to verify your identity and prevent account closure: http://phishing-site.com. Call 1-800-SCAM-NOW for assistance.",
	},
	{
		ID:    3,
		Type:  core.SampleHam,
		Title: "Business Meeting",
		Text:  "Hi John, Thanks for your email yesterday. I've reviewed the project proposal and it looks great. Let's schedule a meeting next Tuesday at 2pm to discuss the next steps. Looking forward to working with you!",
	},
	{
		ID:    4,
		Type:  core.SampleHam,
		Title: "Dinner Plans",
		Text:  "Hey! Just wanted to remind you about dinner tonight at 7pm. I made a reservation at that Italian restaurant you mentioned. See you there! Let me know if you're running late.",
	},
	{
		ID:    5,
		Type:  core.SampleSpam,
		Title: "Lottery Scam",
		Text:  "You've WON £500,000 in the UK National Lottery! To claim your prize, send your bank details to lottery@scam.com. Reply within 48 hours or forfeit your winnings!",
	},
	{
		ID:    6,
		Type:  core.SampleHam,
		Title: "Work Update",
		Text:  "Hi team, Just a quick update on the project timeline. We're on track to meet the deadline next Friday. Please submit your final reports by Wednesday. Thanks for all your hard work!",
	},
}

// Catalog exposes the samples in display order
type Catalog struct{}

// NewCatalog returns the sample catalog
func NewCatalog() *Catalog {
	return &Catalog{}
}

// All returns a copy of every sample in display order
func (c *Catalog) All() []core.Sample {
	out := make([]core.Sample, len(catalog))
	copy(out, catalog)
	return out
}

// Len returns the number of samples
func (c *Catalog) Len() int {
	return len(catalog)
}

// At returns the sample at position i in display order
func (c *Catalog) At(i int) (core.Sample, bool) {
	if i < 0 || i >= len(catalog) {
		return core.Sample{}, false
	}
	return catalog[i], true
}

// Get looks a sample up by id
func (c *Catalog) Get(id int) (core.Sample, error) {
	for _, s := range catalog {
		if s.ID == id {
			return s, nil
		}
	}
	return core.Sample{}, fmt.Errorf("unknown sample id: %d", id)
}

// Preview returns the first PreviewLength runes of a sample followed by an ellipsis
func Preview(s core.Sample) string {
	return utils.TruncateRunes(s.Text, PreviewLength) + "..."
}

// BadgeText returns the badge shown next to a sample
func BadgeText(t core.SampleType) string {
	if t == core.SampleSpam {
		return "⚠️ Spam"
	}
	return "✓ Legitimate"
}
