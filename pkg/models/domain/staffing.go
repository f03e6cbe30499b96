package domain

// ReassignCommand moves an employee record onto another project.
type ReassignCommand struct {
	ID          string
	EmployeeID  string
	ToProjectID string
}

// Allocation is the head-count of assigned employees on one project.
type Allocation struct {
	ProjectID string
	Assigned  int
	OnLeave   int
	Available int
}
