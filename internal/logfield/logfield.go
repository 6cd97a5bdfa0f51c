package lf

import "go.uber.org/zap"

const (
	FieldModule      = "module"
	FieldStudentID   = "student_id"
	FieldSubjectID   = "subject_id"
	FieldSubjectCode = "subject_code"
	FieldRecordID    = "record_id"
	FieldGrade       = "grade"
	FieldOutcome     = "outcome"
	FieldStoreMode   = "store_mode"
)

func Module(module string) zap.Field {
	return zap.String(FieldModule, module)
}

func StudentID(ID string) zap.Field {
	return zap.String(FieldStudentID, ID)
}

func SubjectID(ID string) zap.Field {
	return zap.String(FieldSubjectID, ID)
}

func SubjectCode(code string) zap.Field {
	return zap.String(FieldSubjectCode, code)
}

func RecordID(ID string) zap.Field {
	return zap.String(FieldRecordID, ID)
}

func Grade(grade string) zap.Field {
	return zap.String(FieldGrade, grade)
}

func Outcome(outcome string) zap.Field {
	return zap.String(FieldOutcome, outcome)
}

func StoreMode(mode string) zap.Field {
	return zap.String(FieldStoreMode, mode)
}
