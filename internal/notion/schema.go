package notion

import "github.com/windedu/windtest-entry-app/internal/model"

// Property names of the tutoring workspace databases. The workspace schema is
// Korean; these constants are the single place where those names appear.
const (
	PropTitle        = "이름"      // title on every database
	PropStudent      = "학생"      // relation to the Students database
	PropQuestion     = "문항"      // relation to the Questions database
	PropTestName     = "시험명"    // select on Results/Reports, multi_select on Questions
	PropOutcome      = "정오"      // select: correct/incorrect
	PropExamDate     = "응시일"    // date
	PropScore        = "점수"      // number on Reports
	PropReportStatus = "보고서 상태" // select on Reports
	PropTeacher      = "담당 선생님" // people on Reports
	PropTimeTaken    = "소요시간"   // number on Reports, minutes
	PropQuestionText = "문제"      // rich_text on Questions
	PropUnit         = "단원"      // select on Questions
	PropQTypes       = "유형"      // multi_select on Questions
	PropDifficulty   = "난이도"    // select on Questions
	PropWeight       = "배점"      // number on Questions
)

// Sentinel values stored in the remote select properties.
const (
	outcomeCorrect   = "정답"
	outcomeIncorrect = "오답"

	// ReportStatusEntryComplete is stamped on every successful report write.
	ReportStatusEntryComplete = "1. 입력 완료"

	// NotificationMessage asks the administrator to generate the report.
	NotificationMessage = "시험 점수 입력이 완료되었습니다. 리포트 생성을 부탁드립니다."
)

// OutcomeWire translates the internal outcome enum to its stored value.
func OutcomeWire(o model.Outcome) string {
	if o == model.OutcomeCorrect {
		return outcomeCorrect
	}
	return outcomeIncorrect
}

// OutcomeFromWire translates a stored value back to the enum. Unknown values
// (remote-side anomalies) report ok=false.
func OutcomeFromWire(s string) (model.Outcome, bool) {
	switch s {
	case outcomeCorrect:
		return model.OutcomeCorrect, true
	case outcomeIncorrect:
		return model.OutcomeIncorrect, true
	default:
		return "", false
	}
}
