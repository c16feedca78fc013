package domain

import "time"

// DayKeyLayout is the layout of the keys used in LineItem.DailyCounts.
const DayKeyLayout = "2006-01-02"

// Day is one column of the transmission calendar. Key identifies the date
// unambiguously; Label is the short editor heading ("15/L") and may repeat
// across weeks of a long campaign.
type Day struct {
	Date  time.Time `json:"date"`
	Key   string    `json:"key"`
	Label string    `json:"label"`
}

// LineItem is one row of the on-air schedule: where and what is aired, the
// tariff per impact and how many impacts run each day. TotalImpacts and
// TotalInvestment are derived and overwritten on every recalculation.
type LineItem struct {
	Plaza     string `json:"plaza"`
	MediaType string `json:"media_type"`
	Outlet    string `json:"outlet"`
	Program   string `json:"program"`
	Duration  string `json:"duration"`
	Product   string `json:"product"`
	Version   string `json:"version"`
	Talent    string `json:"talent"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	Tariff      Cell            `json:"tariff"`
	DailyCounts map[string]Cell `json:"daily_counts"`

	TotalImpacts    int64   `json:"total_impacts"`
	TotalInvestment float64 `json:"total_investment"`
}

// Clone returns a copy of the row that shares no map with the original.
func (li LineItem) Clone() LineItem {
	out := li
	if li.DailyCounts != nil {
		out.DailyCounts = make(map[string]Cell, len(li.DailyCounts))
		for k, v := range li.DailyCounts {
			out.DailyCounts[k] = v
		}
	}
	return out
}

// ExampleLineItem is the single placeholder row offered when a schedule is
// opened without an imported sheet.
func ExampleLineItem() LineItem {
	return LineItem{
		Plaza:       "MONTERREY",
		MediaType:   "RADIO",
		Outlet:      "XERT-AM",
		Program:     ".",
		Duration:    "20''",
		Product:     "SPOT",
		Version:     "VERSION1",
		Talent:      ".",
		StartTime:   "05:00",
		EndTime:     "10:00",
		Tariff:      "0",
		DailyCounts: map[string]Cell{},
	}
}
