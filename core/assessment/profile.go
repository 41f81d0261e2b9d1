package assessment

// Profile is part A of the assessment: who is assessed and who reviews it.
type Profile struct {
	AcademicYear             Value `json:"academicYear"`
	FacultyName              Value `json:"facultyname"`
	Post                     Value `json:"post"`
	PayScale                 Value `json:"payScale"`
	Institution              Value `json:"institution"`
	WorkingInThisInstitution Value `json:"workingInThisInstitution"`
	SectionalHead            Value `json:"sectionalHead"`   // reporting officer
	InstitutionHead          Value `json:"institutionHead"` // recommending officer
	DepartmentHead           Value `json:"departmentHead"`  // forwarding officer
	Secretary                Value `json:"secretary"`       // accepting authority
}

// ProfileField describes one input of the profile form.
type ProfileField struct {
	Name    string
	Label   string
	Numeric bool
}

var ProfileFields = []ProfileField{
	{Name: "academicYear", Label: "ASSESSMENT ACADEMIC YEAR", Numeric: true},
	{Name: "facultyname", Label: "NAME OF FACULTY"},
	{Name: "post", Label: "POST"},
	{Name: "payScale", Label: "PAY SCALE", Numeric: true},
	{Name: "institution", Label: "INSTITUTION"},
	{Name: "workingInThisInstitution", Label: "WORKING IN THIS INSTITUTION (YEARS)", Numeric: true},
	{Name: "sectionalHead", Label: "NAME AND DESIGNATION OF SECTIONAL HEAD (REPORTING OFFICER)"},
	{Name: "institutionHead", Label: "NAME AND DESIGNATION OF THE HEAD OF INSTITUTION (RECOMMENDING OFFICER)"},
	{Name: "departmentHead", Label: "NAME AND DESIGNATION OF THE HEAD OF THE DEPARTMENT (FORWARDING OFFICER)"},
	{Name: "secretary", Label: "NAME OF THE PRINCIPAL SECRETARY (ACCEPTING AUTHORITY)"},
}

func newProfile() *Profile {
	return &Profile{
		AcademicYear:             Number(0),
		PayScale:                 Number(0),
		WorkingInThisInstitution: Number(0),
	}
}

func (p *Profile) field(name string) *Value {
	switch name {
	case "academicYear":
		return &p.AcademicYear
	case "facultyname":
		return &p.FacultyName
	case "post":
		return &p.Post
	case "payScale":
		return &p.PayScale
	case "institution":
		return &p.Institution
	case "workingInThisInstitution":
		return &p.WorkingInThisInstitution
	case "sectionalHead":
		return &p.SectionalHead
	case "institutionHead":
		return &p.InstitutionHead
	case "departmentHead":
		return &p.DepartmentHead
	case "secretary":
		return &p.Secretary
	default:
		return nil
	}
}

// Set stores raw in the named field. Numeric fields fall back to 0 on invalid input.
func (p *Profile) Set(name, raw string) error {
	fld := p.field(name)
	if fld == nil {
		return unknownFieldError(name)
	}
	if isNumericProfileField(name) {
		*fld = ParseInt(raw, Number(0))
	} else {
		*fld = ParseText(raw)
	}
	return nil
}

// Get returns the named field's value.
func (p *Profile) Get(name string) (Value, error) {
	fld := p.field(name)
	if fld == nil {
		return Empty(), unknownFieldError(name)
	}
	return *fld, nil
}

func isNumericProfileField(name string) bool {
	for _, f := range ProfileFields {
		if f.Name == name {
			return f.Numeric
		}
	}
	return false
}

// ProfilePayload is the wire shape of part A.
type ProfilePayload struct {
	AcademicYear             int    `json:"academicYear" validate:"required"`
	FacultyName              string `json:"facultyname" validate:"notblank"`
	Post                     string `json:"post" validate:"notblank"`
	PayScale                 int    `json:"payScale" validate:"required"`
	Institution              string `json:"institution" validate:"notblank"`
	WorkingInThisInstitution int    `json:"workingInThisInstitution"`
	SectionalHead            string `json:"sectionalHead" validate:"notblank"`
	InstitutionHead          string `json:"institutionHead" validate:"notblank"`
	DepartmentHead           string `json:"departmentHead" validate:"notblank"`
	Secretary                string `json:"secretary" validate:"notblank"`
}

func (p *Profile) Payload() ProfilePayload {
	return ProfilePayload{
		AcademicYear:             p.AcademicYear.Int(),
		FacultyName:              p.FacultyName.String(),
		Post:                     p.Post.String(),
		PayScale:                 p.PayScale.Int(),
		Institution:              p.Institution.String(),
		WorkingInThisInstitution: p.WorkingInThisInstitution.Int(),
		SectionalHead:            p.SectionalHead.String(),
		InstitutionHead:          p.InstitutionHead.String(),
		DepartmentHead:           p.DepartmentHead.String(),
		Secretary:                p.Secretary.String(),
	}
}
