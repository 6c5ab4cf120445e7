package submission

import (
	"time"

	"goeval/domain/core"
)

// Answer is one respondent's response to one leaf indicator. The choice token
// is by convention a lettered option ("A. ..." means fully done, "B. ..."
// partially done); the elaboration is free text a respondent supplies for a
// partially-complete answer.
type Answer struct {
	LeafSequence int    `json:"leaf_sequence"`
	ChoiceToken  string `json:"choice_token"`
	Elaboration  string `json:"elaboration_text,omitempty"`
}

// Submission is one filled questionnaire. Answers and Elaborations are keyed
// by the stringified leaf sequence, matching the shape submission capture
// produces regardless of channel (web form, document import). A submission
// owns its answers exclusively; it is immutable once stored.
type Submission struct {
	ID           core.SubmissionID `json:"id"`
	OrgName      string            `json:"org_name"`
	OrgType      string            `json:"org_type"`
	Tier         string            `json:"tier"`
	Level        string            `json:"level"`
	Answers      map[string]string `json:"answers"`
	Elaborations map[string]string `json:"elaborations,omitempty"`
	SubmittedAt  time.Time         `json:"submitted_at"`
}

// New creates a submission with a fresh time-ordered ID.
func New(orgName, orgType, tier, level string, answers, elaborations map[string]string) *Submission {
	return &Submission{
		ID:           core.SubmissionID(core.NewID()),
		OrgName:      orgName,
		OrgType:      orgType,
		Tier:         tier,
		Level:        level,
		Answers:      answers,
		Elaborations: elaborations,
		SubmittedAt:  time.Now().UTC(),
	}
}
