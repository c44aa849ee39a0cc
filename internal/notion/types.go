package notion

// Wire types for the subset of the Notion API the sync engine touches.
// Date values stay raw strings on purpose: the projector decides
// timed-vs-all-day by pattern-matching the raw text, and parsing here
// would destroy that distinction.

// Page is one task-store record as returned by a database query.
type Page struct {
	ID         string              `json:"id"`
	Archived   bool                `json:"archived"`
	Properties map[string]Property `json:"properties"`
}

// Property is one property value. Type names the variant; exactly one of
// the variant fields is populated.
type Property struct {
	Type     string        `json:"type"`
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Status   *SelectOption `json:"status,omitempty"`
	Date     *DateValue    `json:"date,omitempty"`
}

// RichText is one fragment of a title or rich_text property.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is the chosen option of a select or status property.
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue carries the raw ISO 8601 strings of a date property.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// queryRequest is the body of a database query call.
type queryRequest struct {
	Filter      *statusFilter `json:"filter,omitempty"`
	StartCursor string        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

// statusFilter expresses the two queries the engine issues: status equals
// Archived, and status does not equal Archived.
type statusFilter struct {
	Property string          `json:"property"`
	Status   statusCondition `json:"status"`
}

type statusCondition struct {
	Equals       string `json:"equals,omitempty"`
	DoesNotEqual string `json:"does_not_equal,omitempty"`
}

// queryResponse is one page of database query results.
type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// updateRequest is the body of a page PATCH flipping the status property.
type updateRequest struct {
	Properties map[string]Property `json:"properties"`
}

// apiError is the error envelope Notion returns on non-2xx responses.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// text concatenates the plain-text fragments of a title or rich_text
// property.
func text(fragments []RichText) string {
	out := ""
	for _, f := range fragments {
		out += f.PlainText
	}
	return out
}
