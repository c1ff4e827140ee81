package entries

// Gender es el valor del selector de género. Vacío = sin especificar.
// @Enum Male, Female, Other
type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "Male"
	GenderFemale      Gender = "Female"
	GenderOther       Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderUnspecified, GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// Field nombra un campo editable de Entry.
type Field string

const (
	FieldAge        Field = "age"
	FieldGender     Field = "gender"
	FieldDoctorName Field = "doctorName"
	FieldDisease    Field = "disease"
	FieldStartTime  Field = "startTime"
	FieldEndTime    Field = "endTime"
)

func (f Field) Valid() bool {
	switch f {
	case FieldAge, FieldGender, FieldDoctorName, FieldDisease, FieldStartTime, FieldEndTime:
		return true
	default:
		return false
	}
}

// IsTime indica si el campo lo escribe la captura de hora.
func (f Field) IsTime() bool {
	return f == FieldStartTime || f == FieldEndTime
}

// Entry es un registro de paciente en edición.
// Todo es texto libre: la única conversión (age -> int) ocurre al enviar.
type Entry struct {
	ID string

	Age        string
	Gender     Gender
	DoctorName string
	Disease    string

	StartTime string
	EndTime   string
}

func (e Entry) Value(f Field) string {
	switch f {
	case FieldAge:
		return e.Age
	case FieldGender:
		return string(e.Gender)
	case FieldDoctorName:
		return e.DoctorName
	case FieldDisease:
		return e.Disease
	case FieldStartTime:
		return e.StartTime
	case FieldEndTime:
		return e.EndTime
	default:
		return ""
	}
}

func (e Entry) with(f Field, v string) Entry {
	switch f {
	case FieldAge:
		e.Age = v
	case FieldGender:
		e.Gender = Gender(v)
	case FieldDoctorName:
		e.DoctorName = v
	case FieldDisease:
		e.Disease = v
	case FieldStartTime:
		e.StartTime = v
	case FieldEndTime:
		e.EndTime = v
	}
	return e
}
