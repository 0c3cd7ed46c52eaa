package models

// TWSEDailyResponse is the envelope of the TWSE daily all-quotes report.
// Each row is a fixed-position array of display strings.
type TWSEDailyResponse struct {
	Stat string  `json:"stat"`
	Data [][]any `json:"data"`
}

// TPEXTable is one table block inside the TPEx daily quotes payload.
type TPEXTable struct {
	Data [][]any `json:"data"`
}

// TPEXDailyResponse is the envelope of the TPEx daily quotes report. The feed
// has shipped rows under three different container keys over time; Rows
// resolves the union once so callers never sniff the shape themselves.
type TPEXDailyResponse struct {
	Tables []TPEXTable `json:"tables"`
	Data   [][]any     `json:"data"`
	AaData [][]any     `json:"aaData"`
}

// Rows returns the row set for whichever container the payload used, in
// precedence order tables[0].data, data, aaData. A payload with none of the
// containers yields nil, which normalizes to zero stocks rather than an error.
func (r *TPEXDailyResponse) Rows() [][]any {
	if len(r.Tables) > 0 && len(r.Tables[0].Data) > 0 {
		return r.Tables[0].Data
	}
	if len(r.Data) > 0 {
		return r.Data
	}
	if len(r.AaData) > 0 {
		return r.AaData
	}
	return nil
}
