package domain

type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "draft"
	ProjectSubmitted  ProjectStatus = "submitted"
	ProjectApproved   ProjectStatus = "approved"
	ProjectRejected   ProjectStatus = "rejected"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
)

var ProjectStatuses = []ProjectStatus{
	ProjectDraft,
	ProjectSubmitted,
	ProjectApproved,
	ProjectRejected,
	ProjectInProgress,
	ProjectCompleted,
}

// reviewTransitions lists the moves an admin may apply to a project.
var reviewTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectSubmitted:  {ProjectApproved, ProjectRejected},
	ProjectApproved:   {ProjectInProgress},
	ProjectInProgress: {ProjectCompleted},
	ProjectRejected:   {ProjectSubmitted},
}

func (s ProjectStatus) Valid() bool {
	for _, st := range ProjectStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsEditableByOwner is true while the owner may still change the content.
func (s ProjectStatus) IsEditableByOwner() bool {
	return s == ProjectDraft || s == ProjectRejected || s == ProjectSubmitted
}

// IsDeletable is false once a project has been approved, including the
// statuses that follow approval.
func (s ProjectStatus) IsDeletable() bool {
	return s.Valid() && s != ProjectApproved && s != ProjectInProgress && s != ProjectCompleted
}

func (s ProjectStatus) IsPublic() bool {
	return s == ProjectApproved || s == ProjectInProgress || s == ProjectCompleted
}

// CanReview reports whether an admin may move a project from one status to
// another.
func CanReview(from, to ProjectStatus) bool {
	for _, next := range reviewTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanOwnerSave reports whether the owner may save a project currently in
// from with status to. An empty from means the project does not exist yet.
func CanOwnerSave(from, to ProjectStatus) bool {
	if to != ProjectDraft && to != ProjectSubmitted {
		return false
	}
	return from == "" || from.IsEditableByOwner()
}

// ReviewTargets returns the statuses an admin can move a project to from s.
func ReviewTargets(s ProjectStatus) []ProjectStatus {
	targets := reviewTransitions[s]
	out := make([]ProjectStatus, len(targets))
	copy(out, targets)
	return out
}
