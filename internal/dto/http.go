package dto

// BaseResponse is the uniform HTTP envelope. Handlers set OK=false and fill
// Msg on any failure so clients never have to parse transport errors.
type BaseResponse struct {
	OK     bool        `json:"ok"`
	Status string      `json:"status"`
	Msg    string      `json:"msg,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

func NewOKResponse(data interface{}) BaseResponse {
	return BaseResponse{OK: true, Status: "OK", Data: data}
}

func NewErrorResponse(msg string) BaseResponse {
	return BaseResponse{OK: false, Status: "ERROR", Msg: msg}
}

type GetLevelsRequest struct {
	Symbol   string `param:"symbol" validate:"required"`
	Exchange string `query:"exchange"`
	Session  string `query:"session"`
}

type GetDirectiveRequest struct {
	Symbol   string `param:"symbol" validate:"required"`
	Exchange string `query:"exchange"`
	Session  string `query:"session"`
}

// LevelsResponse is the full payload of GET /api/levels/:symbol.
type LevelsResponse struct {
	Symbol    string         `json:"symbol"`
	Session   SessionContext `json:"session"`
	Levels    LevelSet       `json:"levels"`
	UpdatedAt int64          `json:"updated_at"`
}

// DirectiveResponse is the payload of GET /api/directive/:symbol.
type DirectiveResponse struct {
	Symbol    string            `json:"symbol"`
	Session   SessionContext    `json:"session"`
	Levels    LevelSet          `json:"levels"`
	Directive Directive         `json:"directive"`
	Playbook  TradeLogicSummary `json:"playbook"`
}

// BriefingResponse adds the model-written narrative on top of the directive
// payload.
type BriefingResponse struct {
	DirectiveResponse
	Narrative string `json:"narrative"`
}
