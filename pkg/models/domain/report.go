package domain

import "time"

// Report represents a complete revenue report ready for display
type Report struct {
	Title       string
	Period      TimePeriod
	Sections    []ReportSection
	TotalAmount float64
	Currency    string
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
	Label    string
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Columns []string
	Details []ReportDetail
}

// ReportDetail represents one row within a section. Values line up with the
// section columns after the name column; Change, when set, is a percentage.
type ReportDetail struct {
	Name   string
	Values []string
	Change *float64
}
