package domain

// Report is a rendered view handed to a terminal reporter
type Report struct {
	Title    string
	Sections []ReportSection
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail is one row of a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Description string
}
