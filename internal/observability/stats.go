package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	PagesFetched       uint64            `json:"pages_fetched"`
	Extractions        uint64            `json:"extractions"`
	EmptyExtractions   uint64            `json:"empty_extractions"`
	Unsupported        uint64            `json:"unsupported"`
	Recovered          uint64            `json:"recovered"`
	OpportunitiesSaved uint64            `json:"opportunities_saved"`
	ErrorsTotal        uint64            `json:"errors_total"`
	ExtractionsBySite  map[string]uint64 `json:"extractions_by_site,omitempty"`
	FieldsFound        map[string]uint64 `json:"fields_found,omitempty"`
	ErrorsByType       map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent  map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	pagesFetched       uint64
	extractions        uint64
	emptyExtractions   uint64
	unsupported        uint64
	recovered          uint64
	opportunitiesSaved uint64
	errorsTotal        uint64

	statsMu           sync.Mutex
	extractionsBySite = map[string]uint64{}
	fieldsFound       = map[string]uint64{}
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncPagesFetched() {
	atomic.AddUint64(&pagesFetched, 1)
}

func IncUnsupported() {
	atomic.AddUint64(&unsupported, 1)
}

func IncRecovered() {
	atomic.AddUint64(&recovered, 1)
}

func IncOpportunitiesSaved() {
	atomic.AddUint64(&opportunitiesSaved, 1)
}

// ObserveExtraction records one finished extraction and the fields it set.
func ObserveExtraction(site string, fields []string) {
	if site == "" {
		site = "unknown"
	}
	atomic.AddUint64(&extractions, 1)
	if len(fields) == 0 {
		atomic.AddUint64(&emptyExtractions, 1)
	}
	statsMu.Lock()
	extractionsBySite[site]++
	for _, f := range fields {
		fieldsFound[f]++
	}
	statsMu.Unlock()
}

func IncError(errType, component string) {
	if errType == "" {
		errType = "unknown"
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	bySite := copyMap(extractionsBySite)
	fields := copyMap(fieldsFound)
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	return StatsSnapshot{
		PagesFetched:       atomic.LoadUint64(&pagesFetched),
		Extractions:        atomic.LoadUint64(&extractions),
		EmptyExtractions:   atomic.LoadUint64(&emptyExtractions),
		Unsupported:        atomic.LoadUint64(&unsupported),
		Recovered:          atomic.LoadUint64(&recovered),
		OpportunitiesSaved: atomic.LoadUint64(&opportunitiesSaved),
		ErrorsTotal:        atomic.LoadUint64(&errorsTotal),
		ExtractionsBySite:  bySite,
		FieldsFound:        fields,
		ErrorsByType:       errorsTypeCopy,
		ErrorsByComponent:  errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
