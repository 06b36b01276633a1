package approvalworkflow

import (
	"time"

	"github.com/google/uuid"
)

// Modules that can be routed through a workflow.
const (
	ModuleLeave = "LEAVE"
)

type ApprovalWorkflow struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"type:varchar(100);not null"`
	Module      string         `gorm:"type:varchar(30);not null;index"`
	Description string         `gorm:"type:text"`
	IsActive    bool           `gorm:"not null;default:true"`
	Steps       []WorkflowStep `gorm:"foreignKey:WorkflowID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (ApprovalWorkflow) TableName() string {
	return "approval_workflows"
}

type WorkflowStep struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	WorkflowID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_workflow_steps_order"`
	StepOrder          int        `gorm:"not null;uniqueIndex:uq_workflow_steps_order"`
	Name               string     `gorm:"type:varchar(100);not null"`
	ApproverRoleID     *uuid.UUID `gorm:"type:uuid"`
	ApproverEmployeeID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time  `gorm:"autoCreateTime"`
}

func (WorkflowStep) TableName() string {
	return "workflow_steps"
}

// CanApprove reports whether an actor with the given employee and role ids
// may act on this step. A step without an approver accepts anyone who holds
// the module's approve permission.
func (s WorkflowStep) CanApprove(employeeID, roleID string) bool {
	if s.ApproverEmployeeID != nil {
		return s.ApproverEmployeeID.String() == employeeID
	}
	if s.ApproverRoleID != nil {
		return s.ApproverRoleID.String() == roleID
	}
	return true
}

// Step returns the step with the given 1-based order.
func (w ApprovalWorkflow) Step(order int) (WorkflowStep, bool) {
	for _, st := range w.Steps {
		if st.StepOrder == order {
			return st, true
		}
	}
	return WorkflowStep{}, false
}

func (w ApprovalWorkflow) LastStep() int {
	last := 0
	for _, st := range w.Steps {
		if st.StepOrder > last {
			last = st.StepOrder
		}
	}
	return last
}

func IsValidModule(m string) bool {
	return m == ModuleLeave
}
