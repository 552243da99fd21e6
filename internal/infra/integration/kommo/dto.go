package kommo

type LeadInput struct {
	Name     string       `json:"name"`
	Embedded LeadEmbedded `json:"_embedded"`
}

type LeadEmbedded struct {
	Tags     []Tag `json:"tags,omitempty"`
	Contacts []Ref `json:"contacts"`
}

type Tag struct {
	Name string `json:"name"`
}

type Ref struct {
	ID int `json:"id"`
}

type ContactInput struct {
	Name         string        `json:"name"`
	CustomFields []CustomField `json:"custom_fields_values"`
}

type CustomField struct {
	FieldCode string       `json:"field_code"`
	Values    []FieldValue `json:"values"`
}

type FieldValue struct {
	Value    string `json:"value"`
	EnumCode string `json:"enum_code"`
}

type embeddedResponse struct {
	Embedded struct {
		Leads    []Ref `json:"leads"`
		Contacts []Ref `json:"contacts"`
	} `json:"_embedded"`
}
