package dto

type GeminiAPIRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GeminiAPIResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content ContentResponse `json:"content"`
}

type ContentResponse struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role"`
}

// NarrativePayload is the read-only context handed to the narrative model.
// Every numeric field is ground truth computed by the engine; the model only
// writes prose around it.
type NarrativePayload struct {
	Symbol     string            `json:"symbol"`
	Levels     LevelSet          `json:"levels"`
	Range30m   Range30m          `json:"range_30m"`
	HTFShelves HTFShelves        `json:"htf_shelves"`
	TradeLogic TradeLogicSummary `json:"trade_logic"`
	Directive  Directive         `json:"directive"`
}
