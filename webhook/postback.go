package webhook

// PostbackParamsKind classifies the optional params of a postback event.
type PostbackParamsKind string

// Postback params kinds.
const (
	PostbackParamsNone     PostbackParamsKind = ""
	PostbackParamsDate     PostbackParamsKind = "date"
	PostbackParamsTime     PostbackParamsKind = "time"
	PostbackParamsDatetime PostbackParamsKind = "datetime"
	PostbackParamsRichMenu PostbackParamsKind = "richMenu"
)

// PostbackParams is the optional params payload of a postback event.
//
// The platform sends no explicit tag: datetime-picker params carry exactly
// one of date, time, or datetime, while rich-menu-switch params carry a
// status. Discrimination is by key presence. A payload carrying both a
// datetime key and a status is not defined by the platform; Kind resolves
// it in favor of the rich-menu interpretation.
type PostbackParams struct {
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Datetime string `json:"datetime,omitempty"`

	NewRichMenuAliasID string `json:"newRichMenuAliasId,omitempty"`
	Status             string `json:"status,omitempty"`
}

// Kind classifies the params by which keys are present.
func (p *PostbackParams) Kind() PostbackParamsKind {
	if p == nil {
		return PostbackParamsNone
	}

	switch {
	case p.Status != "":
		return PostbackParamsRichMenu
	case p.Datetime != "":
		return PostbackParamsDatetime
	case p.Date != "":
		return PostbackParamsDate
	case p.Time != "":
		return PostbackParamsTime
	default:
		return PostbackParamsNone
	}
}

// Postback is the payload of a postback event.
type Postback struct {
	Data   string          `json:"data"`
	Params *PostbackParams `json:"params,omitempty"`
}
