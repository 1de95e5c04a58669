package notion

// Wire types for the subset of the remote store API this service touches:
// database queries, page create/update, comments, and the user list.

type Page struct {
	ID         string                   `json:"id"`
	Properties map[string]PropertyValue `json:"properties"`
}

type PropertyValue struct {
	Type        string         `json:"type,omitempty"`
	Title       []RichTextItem `json:"title,omitempty"`
	RichText    []RichTextItem `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Relation    []PageRef      `json:"relation,omitempty"`
	People      *[]PersonRef   `json:"people,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
}

type RichTextItem struct {
	Text TextContent `json:"text"`
}

type TextContent struct {
	Content string `json:"content"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type PageRef struct {
	ID string `json:"id"`
}

type PersonRef struct {
	ID     string        `json:"id"`
	Name   string        `json:"name,omitempty"`
	Type   string        `json:"type,omitempty"`
	Person *PersonDetail `json:"person,omitempty"`
}

type PersonDetail struct {
	Email string `json:"email,omitempty"`
}

type DateValue struct {
	Start string `json:"start"`
}

type queryRequest struct {
	PageSize    int    `json:"page_size"`
	Filter      Filter `json:"filter,omitempty"`
	StartCursor string `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type userListResponse struct {
	Results    []PersonRef `json:"results"`
	HasMore    bool        `json:"has_more"`
	NextCursor string      `json:"next_cursor"`
}

type databaseResponse struct {
	Properties map[string]databaseProperty `json:"properties"`
}

type databaseProperty struct {
	MultiSelect *selectSchema `json:"multi_select,omitempty"`
	Select      *selectSchema `json:"select,omitempty"`
}

type selectSchema struct {
	Options []SelectOption `json:"options"`
}

// Filter is a query filter in the remote store's JSON shape, assembled with
// the builder helpers below.
type Filter map[string]interface{}

func AndFilter(filters ...Filter) Filter {
	parts := make([]interface{}, len(filters))
	for i, f := range filters {
		parts[i] = f
	}
	return Filter{"and": parts}
}

func RelationContains(property, pageID string) Filter {
	return Filter{
		"property": property,
		"relation": map[string]interface{}{"contains": pageID},
	}
}

func SelectEquals(property, value string) Filter {
	return Filter{
		"property": property,
		"select": map[string]interface{}{"equals": value},
	}
}

func MultiSelectContains(property, value string) Filter {
	return Filter{
		"property": property,
		"multi_select": map[string]interface{}{"contains": value},
	}
}

// Properties is the payload for a page create or update.
type Properties map[string]PropertyValue

func TitleProp(content string) PropertyValue {
	return PropertyValue{Title: []RichTextItem{{Text: TextContent{Content: content}}}}
}

func SelectProp(name string) PropertyValue {
	return PropertyValue{Select: &SelectOption{Name: name}}
}

func RelationProp(pageIDs ...string) PropertyValue {
	refs := make([]PageRef, len(pageIDs))
	for i, id := range pageIDs {
		refs[i] = PageRef{ID: id}
	}
	return PropertyValue{Relation: refs}
}

// PeopleProp with no IDs encodes an explicit empty people list, which clears
// the property on update.
func PeopleProp(userIDs ...string) PropertyValue {
	refs := make([]PersonRef, 0, len(userIDs))
	for _, id := range userIDs {
		refs = append(refs, PersonRef{ID: id})
	}
	return PropertyValue{People: &refs}
}

func NumberProp(value float64) PropertyValue {
	return PropertyValue{Number: &value}
}

func DateProp(start string) PropertyValue {
	return PropertyValue{Date: &DateValue{Start: start}}
}

// Accessors for reading property values off a queried page. All of them
// tolerate missing or differently-typed properties by returning zero values.

func (p Page) TitleText(property string) string {
	if pv, ok := p.Properties[property]; ok && len(pv.Title) > 0 {
		return pv.Title[0].Text.Content
	}
	return ""
}

func (p Page) RichTextValue(property string) string {
	if pv, ok := p.Properties[property]; ok && len(pv.RichText) > 0 {
		return pv.RichText[0].Text.Content
	}
	return ""
}

func (p Page) SelectName(property string) string {
	if pv, ok := p.Properties[property]; ok && pv.Select != nil {
		return pv.Select.Name
	}
	return ""
}

func (p Page) MultiSelectNames(property string) []string {
	pv, ok := p.Properties[property]
	if !ok || len(pv.MultiSelect) == 0 {
		return nil
	}
	names := make([]string, len(pv.MultiSelect))
	for i, opt := range pv.MultiSelect {
		names[i] = opt.Name
	}
	return names
}

func (p Page) FirstRelationID(property string) string {
	if pv, ok := p.Properties[property]; ok && len(pv.Relation) > 0 {
		return pv.Relation[0].ID
	}
	return ""
}

func (p Page) NumberValue(property string) float64 {
	if pv, ok := p.Properties[property]; ok && pv.Number != nil {
		return *pv.Number
	}
	return 0
}
