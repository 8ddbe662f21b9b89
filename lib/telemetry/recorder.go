package telemetry

import "strings"

type Report struct {
	Level  string
	ID     string
	Params []any
}

// Recorder is an API that keeps every report in memory, tests use it to
// assert on what a component reported.
type Recorder struct {
	Reports []Report
	Counts  map[string]int64
}

func NewRecorder() *Recorder {
	return &Recorder{Counts: map[string]int64{}}
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.Reports = append(r.Reports, Report{Level: "broken", ID: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.Reports = append(r.Reports, Report{Level: "warning", ID: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.Reports = append(r.Reports, Report{Level: "debug", ID: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.Counts[id] = count
}

// Find returns the reports of a given level whose id ends with `suffix`.
func (r *Recorder) Find(level, suffix string) []Report {
	var out []Report
	for _, report := range r.Reports {
		if report.Level == level && strings.HasSuffix(report.ID, suffix) {
			out = append(out, report)
		}
	}
	return out
}
