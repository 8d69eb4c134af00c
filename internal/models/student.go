package models

// Student is one placement record for a program participant. Name and email
// are the only required attributes; everything else arrived from legacy
// spreadsheets and is nullable. The at-rest schema matches this struct
// exactly; there is no separate wire format.
type Student struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`

	Region                   *string `db:"region" json:"region,omitempty"`
	CenterName               *string `db:"center_name" json:"center_name,omitempty"`
	ReportingMonth           *string `db:"reporting_month" json:"reporting_month,omitempty"`
	UniqueCode               *string `db:"unique_code" json:"unique_code,omitempty"`
	Course                   *string `db:"course" json:"course,omitempty"`
	Gender                   *string `db:"gender" json:"gender,omitempty"`
	Phone                    *string `db:"phone" json:"phone,omitempty"`
	EducationalQualification *string `db:"educational_qualification" json:"educational_qualification,omitempty"`
	StartDate                *string `db:"start_date" json:"start_date,omitempty"`
	EndDate                  *string `db:"end_date" json:"end_date,omitempty"`
	PlacementMonth           *string `db:"placement_month" json:"placement_month,omitempty"`
	City                     *string `db:"city" json:"city,omitempty"`
	State                    *string `db:"state" json:"state,omitempty"`
	Address                  *string `db:"address" json:"address,omitempty"`
	CompanyName              *string `db:"company_name" json:"company_name,omitempty"`
	Designation              *string `db:"designation" json:"designation,omitempty"`
	Sector                   *string `db:"sector" json:"sector,omitempty"`
	PlacementCounty          *string `db:"placement_county" json:"placement_county,omitempty"`
	PreTrainingIncome        *string `db:"pre_training_income" json:"pre_training_income,omitempty"`
	PostTrainingIncome       *string `db:"post_training_income" json:"post_training_income,omitempty"`
	Remarks                  *string `db:"remarks" json:"remarks,omitempty"`

	PostingEntryLevelJob   *string `db:"posting_entry_level_job" json:"posting_entry_level_job,omitempty"`
	GreenJob               *string `db:"green_job" json:"green_job,omitempty"`
	HouseholdWomenHeaded   *string `db:"household_women_headed" json:"household_women_headed,omitempty"`
	TrainingProofUploaded  *string `db:"training_proof_uploaded" json:"training_proof_uploaded,omitempty"`
	PlacementProofUploaded *string `db:"placement_proof_uploaded" json:"placement_proof_uploaded,omitempty"`

	PhotoKey           *string `db:"photo_key" json:"photo_key,omitempty"`
	ApplicationFormKey *string `db:"application_form_key" json:"application_form_key,omitempty"`
	AttendanceKey      *string `db:"attendance_key" json:"attendance_key,omitempty"`
	PlacementDocKey    *string `db:"placement_doc_key" json:"placement_doc_key,omitempty"`
	PlacementProofKey  *string `db:"placement_proof_key" json:"placement_proof_key,omitempty"`
	TrainingProofKey   *string `db:"training_proof_key" json:"training_proof_key,omitempty"`
}

// FileKeys returns the set object-storage keys attached to the record.
func (s *Student) FileKeys() []string {
	refs := []*string{
		s.PhotoKey,
		s.ApplicationFormKey,
		s.AttendanceKey,
		s.PlacementDocKey,
		s.PlacementProofKey,
		s.TrainingProofKey,
	}
	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref != nil && *ref != "" {
			keys = append(keys, *ref)
		}
	}
	return keys
}

// ApplyFlagDefaults fills unset Yes/No flags with "No".
func (s *Student) ApplyFlagDefaults() {
	no := "No"
	if s.PostingEntryLevelJob == nil {
		v := no
		s.PostingEntryLevelJob = &v
	}
	if s.GreenJob == nil {
		v := no
		s.GreenJob = &v
	}
	if s.HouseholdWomenHeaded == nil {
		v := no
		s.HouseholdWomenHeaded = &v
	}
	if s.TrainingProofUploaded == nil {
		v := no
		s.TrainingProofUploaded = &v
	}
	if s.PlacementProofUploaded == nil {
		v := no
		s.PlacementProofUploaded = &v
	}
}

// StudentPatch is a typed partial update. A nil pointer means "leave the
// column untouched"; a pointer to "" means "write an empty string". This
// keeps presence and emptiness statically distinguishable.
type StudentPatch struct {
	Name                     *string `json:"name,omitempty"`
	Email                    *string `json:"email,omitempty"`
	Region                   *string `json:"region,omitempty"`
	CenterName               *string `json:"center_name,omitempty"`
	ReportingMonth           *string `json:"reporting_month,omitempty"`
	UniqueCode               *string `json:"unique_code,omitempty"`
	Course                   *string `json:"course,omitempty"`
	Gender                   *string `json:"gender,omitempty"`
	Phone                    *string `json:"phone,omitempty"`
	EducationalQualification *string `json:"educational_qualification,omitempty"`
	StartDate                *string `json:"start_date,omitempty"`
	EndDate                  *string `json:"end_date,omitempty"`
	PlacementMonth           *string `json:"placement_month,omitempty"`
	City                     *string `json:"city,omitempty"`
	State                    *string `json:"state,omitempty"`
	Address                  *string `json:"address,omitempty"`
	CompanyName              *string `json:"company_name,omitempty"`
	Designation              *string `json:"designation,omitempty"`
	Sector                   *string `json:"sector,omitempty"`
	PlacementCounty          *string `json:"placement_county,omitempty"`
	PreTrainingIncome        *string `json:"pre_training_income,omitempty"`
	PostTrainingIncome       *string `json:"post_training_income,omitempty"`
	Remarks                  *string `json:"remarks,omitempty"`
	PostingEntryLevelJob     *string `json:"posting_entry_level_job,omitempty"`
	GreenJob                 *string `json:"green_job,omitempty"`
	HouseholdWomenHeaded     *string `json:"household_women_headed,omitempty"`
	TrainingProofUploaded    *string `json:"training_proof_uploaded,omitempty"`
	PlacementProofUploaded   *string `json:"placement_proof_uploaded,omitempty"`
	PhotoKey                 *string `json:"photo_key,omitempty"`
	ApplicationFormKey       *string `json:"application_form_key,omitempty"`
	AttendanceKey            *string `json:"attendance_key,omitempty"`
	PlacementDocKey          *string `json:"placement_doc_key,omitempty"`
	PlacementProofKey        *string `json:"placement_proof_key,omitempty"`
	TrainingProofKey         *string `json:"training_proof_key,omitempty"`
}

// PatchColumn pairs a column name with the value to write.
type PatchColumn struct {
	Column string
	Value  string
}

// Columns returns the set fields in stable column order.
func (p *StudentPatch) Columns() []PatchColumn {
	ordered := []struct {
		column string
		value  *string
	}{
		{"name", p.Name},
		{"email", p.Email},
		{"region", p.Region},
		{"center_name", p.CenterName},
		{"reporting_month", p.ReportingMonth},
		{"unique_code", p.UniqueCode},
		{"course", p.Course},
		{"gender", p.Gender},
		{"phone", p.Phone},
		{"educational_qualification", p.EducationalQualification},
		{"start_date", p.StartDate},
		{"end_date", p.EndDate},
		{"placement_month", p.PlacementMonth},
		{"city", p.City},
		{"state", p.State},
		{"address", p.Address},
		{"company_name", p.CompanyName},
		{"designation", p.Designation},
		{"sector", p.Sector},
		{"placement_county", p.PlacementCounty},
		{"pre_training_income", p.PreTrainingIncome},
		{"post_training_income", p.PostTrainingIncome},
		{"remarks", p.Remarks},
		{"posting_entry_level_job", p.PostingEntryLevelJob},
		{"green_job", p.GreenJob},
		{"household_women_headed", p.HouseholdWomenHeaded},
		{"training_proof_uploaded", p.TrainingProofUploaded},
		{"placement_proof_uploaded", p.PlacementProofUploaded},
		{"photo_key", p.PhotoKey},
		{"application_form_key", p.ApplicationFormKey},
		{"attendance_key", p.AttendanceKey},
		{"placement_doc_key", p.PlacementDocKey},
		{"placement_proof_key", p.PlacementProofKey},
		{"training_proof_key", p.TrainingProofKey},
	}

	cols := make([]PatchColumn, 0, len(ordered))
	for _, f := range ordered {
		if f.value != nil {
			cols = append(cols, PatchColumn{Column: f.column, Value: *f.value})
		}
	}
	return cols
}

// IsEmpty reports whether no field is set.
func (p *StudentPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// DropEmpty unsets fields whose value is the empty string. Create uses this
// so blank form inputs become absent columns; update must NOT use it.
func (p *StudentPatch) DropEmpty() {
	fields := []**string{
		&p.Name, &p.Email, &p.Region, &p.CenterName, &p.ReportingMonth,
		&p.UniqueCode, &p.Course, &p.Gender, &p.Phone,
		&p.EducationalQualification, &p.StartDate, &p.EndDate,
		&p.PlacementMonth, &p.City, &p.State, &p.Address, &p.CompanyName,
		&p.Designation, &p.Sector, &p.PlacementCounty, &p.PreTrainingIncome,
		&p.PostTrainingIncome, &p.Remarks, &p.PostingEntryLevelJob,
		&p.GreenJob, &p.HouseholdWomenHeaded, &p.TrainingProofUploaded,
		&p.PlacementProofUploaded, &p.PhotoKey, &p.ApplicationFormKey,
		&p.AttendanceKey, &p.PlacementDocKey, &p.PlacementProofKey,
		&p.TrainingProofKey,
	}
	for _, f := range fields {
		if *f != nil && **f == "" {
			*f = nil
		}
	}
}

// AggregateCount is one bucket of a GROUP BY aggregation used for charts.
type AggregateCount struct {
	Name  string `db:"name" json:"name"`
	Value int    `db:"value" json:"value"`
}

// GroupableFields are the columns the aggregation endpoint accepts.
var GroupableFields = []string{"gender", "region", "course", "state", "sector", "center_name"}

// IsGroupable reports whether the column may be aggregated over.
func IsGroupable(column string) bool {
	for _, f := range GroupableFields {
		if f == column {
			return true
		}
	}
	return false
}
