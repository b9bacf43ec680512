package domain

// Approval is the tri-state review status of a staging record.
// A record starts as unset and a reviewer moves it to approved or
// rejected; both directions can be revisited any number of times.
type Approval string

const (
	ApprovalUnset    Approval = "unset"
	ApprovalApproved Approval = "approved"
	ApprovalRejected Approval = "rejected"
)

// ApprovalFromBool maps the reviewer's approve/reject decision onto
// the enum. The unset state is never reachable through the API once a
// decision has been made.
func ApprovalFromBool(approved bool) Approval {
	if approved {
		return ApprovalApproved
	}
	return ApprovalRejected
}

// Rejected reports whether the record was explicitly rejected.
// unset is not rejected.
func (a Approval) Rejected() bool {
	return a == ApprovalRejected
}

// Approved reports whether the record was explicitly approved.
func (a Approval) Approved() bool {
	return a == ApprovalApproved
}
